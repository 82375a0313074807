// Package dto holds the wire-facing user representations.
package dto

import (
	"encoding/xml"

	"github.com/google/uuid"
)

// UserDto is the representation returned to callers.
type UserDto struct {
	XMLName  xml.Name  `json:"-" xml:"User"`
	ID       uuid.UUID `json:"id" xml:"Id" example:"77b5a1a4-63a8-4c5a-9a3b-5d4e0e9c2a10"`
	Login    string    `json:"login" xml:"Login" example:"johndoe375"`
	FullName string    `json:"fullName" xml:"FullName" example:"Doe John"`
} // @name UserDto

// UserListDto wraps a page of users for XML rendering; JSON renders the
// bare slice.
type UserListDto struct {
	XMLName xml.Name  `xml:"Users"`
	Users   []UserDto `xml:"User"`
}

// UserToCreateDto is the POST body.
type UserToCreateDto struct {
	Login     string `json:"login" validate:"required,login" example:"johndoe375"`
	FirstName string `json:"firstName" validate:"required" example:"John"`
	LastName  string `json:"lastName" validate:"required" example:"Doe"`
} // @name UserToCreateDto

// UserToUpdateDto is the PUT body and the projection PATCH documents are
// applied to.
type UserToUpdateDto struct {
	Login     string `json:"login" validate:"required,login" example:"johndoe375"`
	FirstName string `json:"firstName" validate:"required" example:"John"`
	LastName  string `json:"lastName" validate:"required" example:"Doe"`
} // @name UserToUpdateDto
