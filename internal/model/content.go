package model

// swagger:model Content
type Content struct {
	BaseModel
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"size:2000;not null" json:"description"`
	Subject     Subject     `gorm:"size:50;not null;index:idx_content_listing" json:"subject"`
	Grade       string      `gorm:"size:10;not null;index:idx_content_listing" json:"grade"`
	ContentType ContentType `gorm:"size:20;not null" json:"contentType"`
	FileURL     string      `gorm:"size:500" json:"fileUrl"`
	TextContent string      `gorm:"type:text" json:"textContent"`
	Thumbnail   string      `gorm:"size:500" json:"thumbnail"`
	Duration    int         `gorm:"default:0" json:"duration"` // minutes, for video/audio
	FileSize    int64       `gorm:"default:0" json:"fileSize"` // bytes
	Tags        StringList  `gorm:"size:500" json:"tags"`
	Difficulty  Difficulty  `gorm:"size:20;default:'beginner'" json:"difficulty"`
	CreatedByID uint        `gorm:"not null;index" json:"createdById"`
	CreatedBy   *User       `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	IsPublished bool        `gorm:"default:false;index:idx_content_listing" json:"isPublished"`
	Views       int64       `gorm:"default:0" json:"views"`
	Downloads   int64       `gorm:"default:0" json:"downloads"`
	LikeCount   int64       `gorm:"-" json:"likes"`
	Order       int         `gorm:"column:sort_order;default:0" json:"order"`
}

func (Content) TableName() string {
	return "contents"
}

// ContentLike is one user's like on one content item. The unique pair makes
// the like toggle a plain insert/delete instead of a read-modify-write on an
// embedded array.
type ContentLike struct {
	BaseModel
	ContentID uint `gorm:"not null;uniqueIndex:idx_content_user_like" json:"contentId"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_content_user_like" json:"userId"`
}

func (ContentLike) TableName() string {
	return "content_likes"
}
