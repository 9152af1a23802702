package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawResumeInput holds the ten free-text fields captured from the form.
// JSON names match the form field names.
type RawResumeInput struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	LinkedIn     string `json:"linkedin" validate:"required"`
	Education    string `json:"education" validate:"required"`
	Experience   string `json:"experience" validate:"required"`
	Skills       string `json:"skills" validate:"required"`
	Objective    string `json:"objective" validate:"required"`
	Projects     string `json:"projects" validate:"required"`
	OtherDetails string `json:"otherDetails"`
}

// ContactInfo is the header block of the exported document.
type ContactInfo struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	LinkedInURL string `json:"linkedin" validate:"required"`
}

// Contact extracts the contact fields of the input.
func (in RawResumeInput) Contact() ContactInfo {
	return ContactInfo{
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		LinkedInURL: in.LinkedIn,
	}
}

var validate = newValidator()

// newValidator reports field errors under their JSON names, which are also the form field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required fields of the input.
func (in *RawResumeInput) Validate() error {
	return validate.Struct(in)
}

// Validate checks the required fields of the contact block.
func (c *ContactInfo) Validate() error {
	return validate.Struct(c)
}

// MissingFields returns the form names of the fields rejected by Validate.
func MissingFields(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	names := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		names = append(names, fieldErr.Field())
	}
	return names
}

// SampleInput returns the illustrative values the form starts with.
func SampleInput() RawResumeInput {
	return RawResumeInput{
		FullName:     "Riya Patel",
		Email:        "riya.patel@gmail.com",
		Phone:        "9876543210",
		LinkedIn:     "linkedin.com/in/riyapatel",
		Education:    "B.Tech in Computer Engineering, Gujarat Technological University, 2024",
		Experience:   "Intern - Web Developer at Sanskritix Global (June 2023 – Sept 2023)\n- Developed responsive web pages using React and Tailwind CSS.\n- Optimized website load time by 35% improving user engagement.",
		Skills:       "HTML, CSS, JavaScript, React, Node.js, Git",
		Objective:    "To secure a front-end developer position in a growth-oriented company.",
		Projects:     "Portfolio Website – Designed a responsive personal website using React and Tailwind CSS.",
		OtherDetails: "Certified AWS Cloud Practitioner (2023)\nWinner of Smart India Hackathon (2022)",
	}
}
