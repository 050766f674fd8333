package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/printlabth/printlab-backend/internal/orders"
	"github.com/printlabth/printlab-backend/pkg/enums"
	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
)

// maxMultipartMemory bounds in-memory buffering while parsing the intake
// form, larger file parts spill to temp files.
const maxMultipartMemory = 32 << 20

// DecodeOrderForm parses the multipart intake form into a submission.
// Field presence is checked by the orders service; this layer only handles
// wire-format concerns (numeric parsing, enum parsing, file handles).
func DecodeOrderForm(r *http.Request) (*orders.SubmitOrderInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	weight := 0
	if raw := strings.TrimSpace(r.FormValue("weight")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight must be a whole number of grams")
		}
		weight = parsed
	}

	quantity := 1
	if raw := strings.TrimSpace(r.FormValue("quantity")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive whole number")
		}
		quantity = parsed
	}

	deliveryType, err := enums.ParseDeliveryType(strings.TrimSpace(r.FormValue("deliveryType")))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery type")
	}

	input := &orders.SubmitOrderInput{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		Address:      strings.TrimSpace(r.FormValue("address")),
		Notes:        strings.TrimSpace(r.FormValue("notes")),
		WeightGrams:  weight,
		Material:     enums.ParseMaterial(strings.ToUpper(strings.TrimSpace(r.FormValue("material")))),
		Color:        strings.TrimSpace(r.FormValue("color")),
		Quantity:     quantity,
		DeliveryType: deliveryType,
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one file is required")
	}
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("open uploaded file %q", header.Filename))
		}
		input.Files = append(input.Files, orders.FileUpload{
			FileName:  header.Filename,
			SizeBytes: header.Size,
			Content:   f,
		})
	}

	return input, nil
}
