package poster

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

const (
	posterCacheS3BucketFlag = "poster-cache-s3-bucket"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   posterCacheS3BucketFlag,
			Usage:  "s3 bucket for resized poster cache",
			EnvVar: "POSTER_CACHE_S3_BUCKET",
		},
	)
}

type Handler struct {
	pg                  *cs.PG
	cl                  *http.Client
	s3Cl                *cs.S3Client
	posterCacheS3Bucket string
}

func RegisterHandler(c *cli.Context, r *gin.Engine, pg *cs.PG, cl *http.Client, s3Cl *cs.S3Client) {
	h := &Handler{
		pg:                  pg,
		cl:                  cl,
		s3Cl:                s3Cl,
		posterCacheS3Bucket: c.String(posterCacheS3BucketFlag),
	}
	r.GET("/poster/:title_id/:file", h.poster)
}
