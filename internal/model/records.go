package model

import "strings"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Blog struct {
	ID         string   `json:"id"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Title      string   `json:"title"`
	ImageIDs   []string `json:"image_ids"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	CategoryID string   `json:"category_id,omitempty"`
	Tags       []string `json:"tags"`
	Slug       string   `json:"slug"`
	Status     string   `json:"status"`
}

func (b Blog) Field(key string) string {
	switch key {
	case "id":
		return b.ID
	case "title":
		return b.Title
	case "category":
		return b.Category
	case "slug":
		return b.Slug
	case "status":
		return b.Status
	case "tags":
		return strings.Join(b.Tags, ", ")
	case "created_at":
		return b.CreatedAt
	case "updated_at":
		return b.UpdatedAt
	default:
		return ""
	}
}

type Faq struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	CategoryID string `json:"category_id,omitempty"`
}

func (f Faq) Field(key string) string {
	switch key {
	case "id":
		return f.ID
	case "question":
		return f.Question
	case "answer":
		return f.Answer
	case "category":
		return f.Category
	case "created_at":
		return f.CreatedAt
	case "updated_at":
		return f.UpdatedAt
	default:
		return ""
	}
}

type Category struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (c Category) Field(key string) string {
	switch key {
	case "id":
		return c.ID
	case "title":
		return c.Title
	case "created_at":
		return c.CreatedAt
	case "updated_at":
		return c.UpdatedAt
	default:
		return ""
	}
}

type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	ProfileImage   string   `json:"profile_image"`
	BannerImage    string   `json:"banner_image"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	FollowerCount  int      `json:"follower_count"`
	FollowingCount int      `json:"following_count"`
	IsVerified     bool     `json:"is_verified"`
	Permissions    []string `json:"permissions"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ListParams are the shared query filters for paged list endpoints.
// Zero values are omitted from the outgoing query string.
type ListParams struct {
	Page       int
	PageSize   int
	Query      string
	ID         string
	Slug       string
	CategoryID string
}

type CreateBlogInput struct {
	Title      string   `json:"title"`
	ImageIDs   []string `json:"image_ids"`
	Content    string   `json:"content"`
	CategoryID string   `json:"category_id"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
}

type CreateFaqInput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID string `json:"category_id"`
}

type CreateCategoryInput struct {
	Title string `json:"title"`
}

// ResolveCategoryID picks the category id for a record that may carry an
// explicit id, only a category title, or neither. An explicit id always
// wins; a title is matched against the known categories; otherwise empty.
func ResolveCategoryID(categoryID string, categoryTitle string, categories []Category) string {
	if categoryID != "" {
		return categoryID
	}

	if categoryTitle == "" {
		return ""
	}

	for _, c := range categories {
		if c.Title == categoryTitle {
			return c.ID
		}
	}

	return ""
}
