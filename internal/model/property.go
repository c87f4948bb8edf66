package model

import "time"

// Property is a rental listing owned by a host
type Property struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"userId"`
	Title         string       `json:"title"`
	Location      string       `json:"location"`
	Description   string       `json:"description"`
	PricePerNight float64      `json:"pricePerNight"`
	Bedrooms      *int32       `json:"bedrooms"`
	Bathrooms     *int32       `json:"bathrooms"`
	Size          *string      `json:"size"`
	Thumbnail     *string      `json:"thumbnail"`
	Gallery       []string     `json:"gallery"`
	PetFriendly   bool         `json:"petFriendly"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	User          *UserSummary `json:"user,omitempty"`
	Bookings      []Booking    `json:"bookings,omitempty"`
}

// CreatePropertyRequest binds from JSON or multipart form fields.
// In a multipart request thumbnail and gallery are file parts, so the
// string references are only read from a JSON body.
type CreatePropertyRequest struct {
	Title         string   `json:"title" form:"title" binding:"required"`
	Location      string   `json:"location" form:"location" binding:"required"`
	Description   string   `json:"description" form:"description" binding:"required"`
	PricePerNight float64  `json:"pricePerNight" form:"pricePerNight" binding:"required,gt=0"`
	Bedrooms      *int32   `json:"bedrooms" form:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms     *int32   `json:"bathrooms" form:"bathrooms" binding:"omitempty,gte=0"`
	Size          *string  `json:"size" form:"size"`
	Thumbnail     *string  `json:"thumbnail" form:"-"`
	Gallery       []string `json:"gallery" form:"-"`
	PetFriendly   bool     `json:"petFriendly" form:"petFriendly"`
}

// UpdatePropertyRequest holds a partial update; nil fields are left unchanged
type UpdatePropertyRequest struct {
	Title         *string  `json:"title,omitempty" form:"title"`
	Location      *string  `json:"location,omitempty" form:"location"`
	Description   *string  `json:"description,omitempty" form:"description"`
	PricePerNight *float64 `json:"pricePerNight,omitempty" form:"pricePerNight" binding:"omitempty,gt=0"`
	Bedrooms      *int32   `json:"bedrooms,omitempty" form:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms     *int32   `json:"bathrooms,omitempty" form:"bathrooms" binding:"omitempty,gte=0"`
	Size          *string  `json:"size,omitempty" form:"size"`
	Thumbnail     *string  `json:"thumbnail,omitempty" form:"-"`
	Gallery       []string `json:"gallery,omitempty" form:"-"`
	PetFriendly   *bool    `json:"petFriendly,omitempty" form:"petFriendly"`
}
