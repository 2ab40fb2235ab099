package models

type ContentType string

const (
	ContentTypeMovie       ContentType = "Movie"
	ContentTypeWebSeries   ContentType = "Web Series"
	ContentTypeOTT         ContentType = "OTT"
	ContentTypeDocumentary ContentType = "Documentary"
	ContentTypeOther       ContentType = "Other"
)

var ContentTypes = []ContentType{
	ContentTypeMovie,
	ContentTypeWebSeries,
	ContentTypeOTT,
	ContentTypeDocumentary,
	ContentTypeOther,
}

func (t ContentType) String() string {
	return string(t)
}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}
