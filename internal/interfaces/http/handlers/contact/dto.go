package contact

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/contact/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

var contactOrderingFields = map[string]string{
	"id":          "id",
	"full_name":   "full_name",
	"created_at":  "created_at",
	"modified_at": "modified_at",
}

var tagOrderingFields = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type CreateContactRequest struct {
	FullName  string `json:"full_name" binding:"max=200"`
	DiscordID string `json:"discord_id" binding:"max=100"`
	Email     string `json:"email" binding:"omitempty,email,max=254"`
	Phone     string `json:"phone" binding:"max=50"`
	Note      string `json:"note"`
}

func (r CreateContactRequest) ToCommand() usecases.CreateContactCommand {
	return usecases.CreateContactCommand{
		FullName:  r.FullName,
		DiscordID: r.DiscordID,
		Email:     r.Email,
		Phone:     r.Phone,
		Note:      r.Note,
	}
}

type UpdateContactRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,max=200"`
	DiscordID *string `json:"discord_id" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,max=254"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Note      *string `json:"note"`
}

func (r UpdateContactRequest) ToCommand(contactID uint) usecases.UpdateContactCommand {
	return usecases.UpdateContactCommand{
		ContactID: contactID,
		FullName:  r.FullName,
		DiscordID: r.DiscordID,
		Email:     r.Email,
		Phone:     r.Phone,
		Note:      r.Note,
	}
}

// PersonAndTagsRequest replaces a contact's whole tag set, keyed by Discord id.
type PersonAndTagsRequest struct {
	DiscordID string   `json:"discord_id" binding:"required,max=100"`
	FullName  string   `json:"full_name" binding:"max=200"`
	Email     string   `json:"email" binding:"omitempty,email,max=254"`
	Phone     string   `json:"phone" binding:"max=50"`
	Note      string   `json:"note"`
	Tags      []string `json:"tags"`
}

type AppendActivityRequest struct {
	ActivityType string                 `json:"activity_type" binding:"required,max=32"`
	Data         map[string]interface{} `json:"data"`
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=64"`
	Color string `json:"color" binding:"omitempty,max=16"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=64"`
	Color *string `json:"color" binding:"omitempty,max=16"`
}

// AssignTagRequest names the tag either by id or by name.
type AssignTagRequest struct {
	ContactID uint   `json:"contact" binding:"required"`
	TagID     *uint  `json:"tag"`
	TagName   string `json:"tag_name" binding:"max=64"`
}

func parseListContactsQuery(c *gin.Context) (usecases.ListContactsQuery, error) {
	base, err := utils.ParseBaseFilter(c, contactOrderingFields)
	if err != nil {
		return usecases.ListContactsQuery{}, err
	}
	q := usecases.ListContactsQuery{
		BaseFilter: base,
		Search:     utils.QueryString(c, "q"),
		Tag:        utils.QueryString(c, "tag"),
	}
	if q.GroupID, err = utils.QueryUint(c, "group"); err != nil {
		return q, err
	}
	if q.CreatedAfter, err = utils.QueryTime(c, "created_after", false); err != nil {
		return q, err
	}
	if q.CreatedBefore, err = utils.QueryTime(c, "created_before", true); err != nil {
		return q, err
	}
	return q, nil
}
