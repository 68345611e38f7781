package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsExport stores metadata about a volume-series CSV exported by a user.
// The actual file resides in S3.
type StatsExport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"key"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Points      int                `bson:"points" json:"points"` // Number of rows in the CSV
	Size        int64              `bson:"size" json:"size"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
