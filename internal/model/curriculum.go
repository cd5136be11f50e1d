package model

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Curriculum is the stored week/topic outline for a course. The weeks tree is
// produced upstream and persisted as a single JSONB document; the assessment
// engine only ever reads it.
type Curriculum struct {
	CourseID  string                       `gorm:"primaryKey" json:"course_id"`
	Weeks     datatypes.JSONType[[]Week]   `gorm:"type:jsonb" json:"weeks"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
	DeletedAt gorm.DeletedAt               `gorm:"index" json:"-"`
}

type Week struct {
	WeekNumber int     `json:"week_number"`
	Title      string  `json:"title"`
	Topics     []Topic `json:"topics"`
}

type Topic struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources,omitempty"`
}

// Resource is a learning resource reference. Upstream content delivers these
// either as a bare URL string or as a {url, type} object; both shapes
// normalize to this struct at ingestion time so nothing downstream has to
// branch on shape again.
type Resource struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		r.URL = url
		r.Type = InferResourceType(url)
		return nil
	}

	type resourceAlias Resource
	var alias resourceAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	r.URL = alias.URL
	r.Type = alias.Type
	if r.Type == "" {
		r.Type = InferResourceType(r.URL)
	}
	return nil
}

// InferResourceType classifies a resource URL into one of
// article, video, pdf or course.
func InferResourceType(rawURL string) string {
	url := strings.ToLower(rawURL)
	switch {
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"), strings.Contains(url, "vimeo.com"):
		return "video"
	case strings.HasSuffix(url, ".pdf"):
		return "pdf"
	case strings.Contains(url, "coursera.org"), strings.Contains(url, "udemy.com"), strings.Contains(url, "edx.org"):
		return "course"
	default:
		return "article"
	}
}

// WeekByNumber returns the curriculum week with the given number, or nil.
func (c *Curriculum) WeekByNumber(weekNumber int) *Week {
	weeks := c.Weeks.Data()
	for i := range weeks {
		if weeks[i].WeekNumber == weekNumber {
			return &weeks[i]
		}
	}
	return nil
}

// TopicTitleMap maps topic id to title across every week of the curriculum.
func (c *Curriculum) TopicTitleMap() map[string]string {
	titles := make(map[string]string)
	for _, week := range c.Weeks.Data() {
		for _, topic := range week.Topics {
			titles[topic.ID] = topic.Title
		}
	}
	return titles
}
