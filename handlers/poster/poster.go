package poster

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
)

type Format string

const (
	FormatJPEG Format = "jpg"
)

const (
	JPEGQuality = 85
)

type Args struct {
	titleID uuid.UUID
	width   int
	format  Format
}

func (s *Args) Key() string {
	return fmt.Sprintf("%v/%v.%v", s.titleID, s.width, s.format)
}

func (s *Handler) bindArgs(c *gin.Context) (*Args, error) {
	titleID, err := uuid.FromString(c.Param("title_id"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse title id")
	}
	file := c.Param("file")
	fileParts := strings.Split(file, ".")
	if len(fileParts) != 2 {
		return nil, errors.Errorf("wrong file format %v", file)
	}
	width, err := strconv.Atoi(fileParts[0])
	if err != nil || width <= 0 || width > 2000 {
		return nil, errors.Errorf("wrong width %v", fileParts[0])
	}
	f := Format(fileParts[1])
	if f != FormatJPEG {
		return nil, errors.Errorf("wrong format %v", f)
	}
	return &Args{
		titleID: titleID,
		width:   width,
		format:  f,
	}, nil
}

func (s *Handler) poster(c *gin.Context) {
	pa, err := s.bindArgs(c)
	if err != nil {
		log.WithError(err).Error("failed to bind poster args")
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()

	db := s.pg.Get()
	if db == nil {
		log.Error("no db")
		c.Status(http.StatusInternalServerError)
		return
	}

	b, err := s.getResizedJPEGPosterWithCache(ctx, db, s.s3Cl, pa)
	if err != nil {
		log.WithError(err).Error("failed to get resized image")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if b == nil {
		c.Status(http.StatusNotFound)
		return
	}

	etag := s.generateETag(b.Bytes())

	if match := c.Request.Header.Get("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Length", strconv.Itoa(b.Len()))
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)

	_, _ = io.Copy(c.Writer, b)
}

func (s *Handler) generateETag(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf(`"%x"`, sum[:])
}

func (s *Handler) getResizedPoster(ctx context.Context, db *pg.DB, args *Args) (*image.NRGBA, error) {
	title, err := models.GetTitleByID(ctx, db, args.titleID)
	if err != nil {
		return nil, err
	}
	if title == nil || title.PosterURL == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", title.PosterURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to fetch poster %v status=%v", title.PosterURL, resp.StatusCode)
	}

	srcImg, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(srcImg, args.width, 0, imaging.Lanczos)

	return resized, nil
}

func (s *Handler) getResizedJPEGPosterWithCache(ctx context.Context, db *pg.DB, s3Cl *cs.S3Client, args *Args) (*bytes.Buffer, error) {
	if s3Cl == nil || s.posterCacheS3Bucket == "" {
		return s.getResizedJPEGPoster(ctx, db, args)
	}
	cl := s3Cl.Get()
	b, err := s.getPosterFromCache(ctx, cl, args)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	b, err = s.getResizedJPEGPoster(ctx, db, args)
	if err != nil || b == nil {
		return b, err
	}
	err = s.putPosterToCache(ctx, cl, args, b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Handler) getResizedJPEGPoster(ctx context.Context, db *pg.DB, args *Args) (*bytes.Buffer, error) {
	r, err := s.getResizedPoster(ctx, db, args)
	if err != nil || r == nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, r, &jpeg.Options{Quality: JPEGQuality})
	if err != nil {
		return nil, err
	}
	return &buf, nil
}

func (s *Handler) getPosterFromCache(ctx context.Context, s3Cl *s3.S3, pa *Args) (*bytes.Buffer, error) {
	r, err := s3Cl.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.posterCacheS3Bucket),
		Key:    aws.String(pa.Key()),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == s3.ErrCodeNoSuchKey {
			return nil, nil
		}
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(r.Body)

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r.Body)
	if err != nil {
		return nil, err
	}
	return &buf, nil
}

func (s *Handler) makeAWSMD5(b []byte) *string {
	h := md5.Sum(b)
	m := base64.StdEncoding.EncodeToString(h[:])
	return aws.String(m)
}

func (s *Handler) putPosterToCache(ctx context.Context, s3Cl *s3.S3, pa *Args, b *bytes.Buffer) (err error) {
	data := b.Bytes()
	_, err = s3Cl.PutObjectWithContext(ctx,
		&s3.PutObjectInput{
			Bucket:     aws.String(s.posterCacheS3Bucket),
			Key:        aws.String(pa.Key()),
			Body:       bytes.NewReader(data),
			ContentMD5: s.makeAWSMD5(data),
		})
	return
}
