package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the DD-MM-YYYY layout used for every date carried on grocery data.
const DateLayout = "02-01-2006"

// GroceryItem is one line of an owner's shopping list.
type GroceryItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
	OwnerID       uuid.UUID `gorm:"type:varchar(36);not null;index:idx_grocery_items_owner_active,priority:1;index:idx_grocery_items_merge,priority:1" json:"-"`
	ItemName      string    `gorm:"size:255;not null" json:"item_name"`
	Unit          string    `gorm:"size:50" json:"unit"`
	Quantity      float64   `gorm:"not null;default:0" json:"quantity"`
	Note          *string   `gorm:"size:255" json:"note"`
	DateAdded     string    `gorm:"size:10" json:"date_added"`
	Purchased     bool      `gorm:"not null;default:false;index:idx_grocery_items_owner_active,priority:2;index:idx_grocery_items_merge,priority:2" json:"purchased"`
	DatePurchased *string   `gorm:"size:10" json:"date_purchased"`

	// Normalized copies of name, unit and note, kept in sync by BeforeSave.
	// Merge lookups filter on these so SQL never has to fold case itself.
	MergeName string `gorm:"size:255;not null;default:'';index:idx_grocery_items_merge,priority:3" json:"-"`
	MergeUnit string `gorm:"size:50;not null;default:'';index:idx_grocery_items_merge,priority:4" json:"-"`
	MergeNote string `gorm:"size:255;not null;default:''" json:"-"`
}

// NormalizeMergePart trims surrounding whitespace and lower-cases s. It is the
// single folding rule behind grocery item merge keys.
func NormalizeMergePart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SyncMergeColumns recomputes the normalized merge columns from the item's
// name, unit and note.
func (g *GroceryItem) SyncMergeColumns() {
	g.MergeName = NormalizeMergePart(g.ItemName)
	g.MergeUnit = NormalizeMergePart(g.Unit)
	g.MergeNote = NormalizeMergePart(g.NoteValue())
}

// BeforeSave keeps the merge columns in step with every create and update.
func (g *GroceryItem) BeforeSave(*gorm.DB) error {
	g.SyncMergeColumns()
	return nil
}

// TableName returns the table name for the GroceryItem model
func (GroceryItem) TableName() string {
	return "grocery_items"
}

// MarkPurchased moves the item to the purchased state stamped with date.
func (g *GroceryItem) MarkPurchased(date string) {
	g.Purchased = true
	g.DatePurchased = &date
}

// MarkActive moves the item back to the active list.
func (g *GroceryItem) MarkActive() {
	g.Purchased = false
	g.DatePurchased = nil
}

// NoteValue returns the note or "" when absent.
func (g *GroceryItem) NoteValue() string {
	if g.Note == nil {
		return ""
	}
	return *g.Note
}

// Clone returns a deep copy of the item.
func (g *GroceryItem) Clone() *GroceryItem {
	c := *g
	if g.Note != nil {
		n := *g.Note
		c.Note = &n
	}
	if g.DatePurchased != nil {
		d := *g.DatePurchased
		c.DatePurchased = &d
	}
	return &c
}
