package orders

import (
	"io"

	"github.com/printlabth/printlab-backend/pkg/db/models"
	"github.com/printlabth/printlab-backend/pkg/enums"
)

// FileUpload is one uploaded model file from the intake form.
type FileUpload struct {
	FileName  string
	SizeBytes int64
	Content   io.Reader
}

// SubmitOrderInput carries everything from the intake form. Weight,
// material, color, and quantity are shared across all files in the
// submission, per-file metadata is not part of the form contract.
type SubmitOrderInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Notes        string
	WeightGrams  int
	Material     enums.Material
	Color        string
	Quantity     int
	DeliveryType enums.DeliveryType
	Files        []FileUpload
}

// RejectedFile reports one upload that failed validation.
type RejectedFile struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// SubmitOrderResult is the outcome of a successful submission. Invalid
// files are reported alongside the created order rather than failing the
// whole request, as long as at least one file was accepted.
type SubmitOrderResult struct {
	Order         *models.Order  `json:"order"`
	RejectedFiles []RejectedFile `json:"rejectedFiles,omitempty"`
}

// UpdateOrderInput carries the mutable fields of an order. Nil means
// leave unchanged.
type UpdateOrderInput struct {
	Status         *enums.OrderStatus
	TrackingNumber *string
}
