// Package document renders orders as downloadable XML documents and parses
// them back.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/fjod/go_shop/internal/domain"
)

const ContentType = "application/xml"

// ErrInvalidText is returned by Encode when a field holds text that XML 1.0
// cannot carry, such as control characters or invalid UTF-8.
var ErrInvalidText = errors.New("text not representable in XML")

type Document struct {
	XMLName  xml.Name `xml:"order"`
	ID       string   `xml:"id,attr"`
	Metadata Metadata `xml:"metadata"`
	User     User     `xml:"user"`
	Items    []Item   `xml:"items>item"`
}

type Metadata struct {
	Status       string    `xml:"status"`
	CreationDate time.Time `xml:"creation_date"`
	TotalPrice   float64   `xml:"total_price"`
}

type User struct {
	ID       string `xml:"id"`
	Username string `xml:"username"`
	Email    string `xml:"email"`
	Address  string `xml:"address,omitempty"`
}

type Item struct {
	ProductID   string  `xml:"product_id"`
	ProductName string  `xml:"product_name"`
	UnitPrice   float64 `xml:"unit_price"`
	Quantity    int     `xml:"quantity"`
	ItemTotal   float64 `xml:"item_total"`
}

func FromOrder(o *domain.Order) Document {
	lines := o.Lines()
	doc := Document{
		ID: o.ID,
		Metadata: Metadata{
			Status:       o.Status().String(),
			CreationDate: o.CreatedAt,
			TotalPrice:   o.TotalPrice,
		},
		User: User{
			ID:       o.Customer.ID,
			Username: o.Customer.Username,
			Email:    o.Customer.Email,
			Address:  o.Customer.Address,
		},
		Items: make([]Item, 0, len(lines)),
	}
	for _, line := range lines {
		doc.Items = append(doc.Items, Item{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			ItemTotal:   line.Total(),
		})
	}
	return doc
}

// Encode renders the order as indented XML with a declaration header.
func Encode(o *domain.Order) ([]byte, error) {
	doc := FromOrder(o)
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("encode order %s: %w", o.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode order %s: %w", o.ID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode order document: %w", err)
	}
	return &doc, nil
}

func (d Document) validate() error {
	fields := []struct{ name, value string }{
		{"id", d.ID},
		{"status", d.Metadata.Status},
		{"user id", d.User.ID},
		{"username", d.User.Username},
		{"email", d.User.Email},
		{"address", d.User.Address},
	}
	for _, item := range d.Items {
		fields = append(fields,
			struct{ name, value string }{"product id", item.ProductID},
			struct{ name, value string }{"product name", item.ProductName},
		)
	}
	for _, f := range fields {
		if !isXMLText(f.value) {
			return fmt.Errorf("%s %q: %w", f.name, f.value, ErrInvalidText)
		}
	}
	return nil
}

// isXMLText reports whether every rune of s is a legal XML 1.0 character.
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x09, r == 0x0A, r == 0x0D:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// Filename is the attachment name for an order's document.
func Filename(orderID string) string {
	return orderID + ".xml"
}
