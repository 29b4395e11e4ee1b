package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Ad struct {
	Id               bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string        `bson:"title" json:"title"`
	Description      string        `bson:"description" json:"description"`
	CategoryId       bson.ObjectID `bson:"category" json:"-"`
	Category         *CategoryRef  `bson:"-" json:"category"`
	ImagePath        string        `bson:"imagePath" json:"imagePath"`
	OriginalFileName string        `bson:"originalFileName" json:"originalFileName"`
	MimeType         string        `bson:"mimeType" json:"mimeType"`
	FileSize         int64         `bson:"fileSize" json:"fileSize"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// StagedFile describes an uploaded file written to managed storage but not yet
// claimed by a persisted Ad.
type StagedFile struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}
