package view

import (
	"strings"

	"cms-admin/internal/model"
	"cms-admin/internal/util"
)

// Modal is the shared dialog shell. A closed modal renders nothing; an
// open one suspends background scroll for exactly as long as it is open.
type Modal struct {
	Open  bool
	Title string
	Size  string // sm, md or lg
	Busy  bool
	// CloseURL is where the backdrop and close button navigate to.
	CloseURL string
}

// BlogForm is the edit/create form state for a blog record.
type BlogForm struct {
	ID         string
	Title      string
	Content    string
	CategoryID string
	Status     string
	Tags       string
	ImageID    string
	Categories []model.Category
}

// NewBlogForm populates the form from an existing record, or resets to
// blank defaults when there is none. A record that carries only a
// category title is resolved against the known categories.
func NewBlogForm(blog *model.Blog, categories []model.Category) BlogForm {
	form := BlogForm{Status: model.StatusDraft, Categories: categories}
	if blog == nil {
		return form
	}

	form.ID = blog.ID
	form.Title = blog.Title
	form.Content = blog.Content
	form.Status = blog.Status
	form.Tags = strings.Join(blog.Tags, ", ")
	form.CategoryID = model.ResolveCategoryID(blog.CategoryID, blog.Category, categories)
	if len(blog.ImageIDs) > 0 {
		form.ImageID = blog.ImageIDs[0]
	}

	return form
}

// CanSubmit gates submission: required fields non-empty after trimming
// and a category selected.
func (f BlogForm) CanSubmit() bool {
	return util.Required(f.Title, f.Content) && f.CategoryID != ""
}

// Input converts the form into the upstream mutation payload.
func (f BlogForm) Input() model.CreateBlogInput {
	var imageIDs []string
	if f.ImageID != "" {
		imageIDs = []string{f.ImageID}
	}

	return model.CreateBlogInput{
		Title:      strings.TrimSpace(f.Title),
		Content:    strings.TrimSpace(f.Content),
		CategoryID: f.CategoryID,
		Status:     f.Status,
		Tags:       util.SplitTags(f.Tags),
		ImageIDs:   imageIDs,
	}
}

type FaqForm struct {
	ID         string
	Question   string
	Answer     string
	CategoryID string
	Categories []model.Category
}

func NewFaqForm(faq *model.Faq, categories []model.Category) FaqForm {
	form := FaqForm{Categories: categories}
	if faq == nil {
		return form
	}

	form.ID = faq.ID
	form.Question = faq.Question
	form.Answer = faq.Answer
	form.CategoryID = model.ResolveCategoryID(faq.CategoryID, faq.Category, categories)

	return form
}

func (f FaqForm) CanSubmit() bool {
	return util.Required(f.Question, f.Answer) && f.CategoryID != ""
}

func (f FaqForm) Input() model.CreateFaqInput {
	return model.CreateFaqInput{
		Question:   strings.TrimSpace(f.Question),
		Answer:     strings.TrimSpace(f.Answer),
		CategoryID: f.CategoryID,
	}
}

type CategoryForm struct {
	ID    string
	Title string
}

func NewCategoryForm(category *model.Category) CategoryForm {
	if category == nil {
		return CategoryForm{}
	}

	return CategoryForm{ID: category.ID, Title: category.Title}
}

func (f CategoryForm) CanSubmit() bool {
	return util.Required(f.Title)
}
