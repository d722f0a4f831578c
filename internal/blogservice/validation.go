package blogservice

import (
	"github.com/sushihentaime/blogcrud/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

// validateDescription checks the description as it will be stored, after script tags are stripped.
func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(sanitizeMarkdown(description) != "", "description", "must contain text outside of script tags")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

func validateCreate(v *common.Validator, req *CreateBlogRequest) {
	v.Check(common.Provided(req.Title), "title", "must be provided")
	v.Check(common.Provided(req.Description), "description", "must be provided")

	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Description != nil {
		validateDescription(v, *req.Description)
	}
}

// validateUpdate checks that at least one allow-listed field was sent and that every sent field is valid.
func validateUpdate(v *common.Validator, req *UpdateBlogRequest) {
	v.Check(req.Title != nil || req.Description != nil, "body", "must contain at least one of: title, description")

	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Description != nil {
		validateDescription(v, *req.Description)
	}
}
