package model

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardType string

const (
	RewardProduct RewardType = "product"
	RewardCoupon  RewardType = "coupon"
)

// Reward is a catalog entry exchangeable for points. Stock == nil means unlimited.
type Reward struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description" json:"description"`
	PointsRequired     int                `bson:"pointsRequired" json:"pointsRequired"`
	Category           string             `bson:"category" json:"category"`
	Type               RewardType         `bson:"type" json:"type"`
	ProductID          string             `bson:"productId,omitempty" json:"productId,omitempty"`
	Cost               int                `bson:"cost" json:"cost"`
	Stock              *int               `bson:"stock,omitempty" json:"stock,omitempty"`
	CouponCode         string             `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	DiscountPercentage int                `bson:"discountPercentage,omitempty" json:"discountPercentage,omitempty"`
	ExpiryDate         time.Time          `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Image              string             `bson:"image,omitempty" json:"image,omitempty"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	IsLimited          bool               `bson:"isLimited" json:"isLimited"`
	CreatedBy          primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	UpdatedBy          primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// InStock reports whether the reward can still be redeemed.
func (r *Reward) InStock() bool {
	return r.Stock == nil || *r.Stock > 0
}

// GenerateCodes assigns the type-specific identifier on first save.
func (r *Reward) GenerateCodes() {
	switch r.Type {
	case RewardProduct:
		if r.ProductID == "" {
			r.ProductID = strings.ToUpper(fmt.Sprintf("PROD_%s_%05d",
				time.Now().Format("060102150405"), rand.Intn(100000)))
		}
	case RewardCoupon:
		if r.CouponCode == "" {
			r.CouponCode = fmt.Sprintf("UJJI%08X", rand.Uint32())
		}
	}
}
