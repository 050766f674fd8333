// Package orders implements the intake pipeline: validate the submission,
// price each accepted file, persist the order with its items in one
// transaction, then announce it on the notification channel best-effort.
package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/printlabth/printlab-backend/internal/pricing"
	"github.com/printlabth/printlab-backend/internal/users"
	"github.com/printlabth/printlab-backend/pkg/db/models"
	"github.com/printlabth/printlab-backend/pkg/enums"
	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
	"github.com/printlabth/printlab-backend/pkg/logger"
	"github.com/printlabth/printlab-backend/pkg/metrics"
	"github.com/printlabth/printlab-backend/pkg/telegram"
)

const (
	// MaxFileSizeBytes is the per-file upload cap (10 MiB).
	MaxFileSizeBytes = 10 << 20

	standardDeliveryDays = 7
	expressDeliveryDays  = 2
)

var allowedExtensions = map[string]struct{}{
	".stl":  {},
	".obj":  {},
	".step": {},
}

var (
	errRepoRequired      = errors.New("orders repository is required")
	errUsersRepoRequired = errors.New("users repository is required")
	errPricingRequired   = errors.New("pricing engine is required")
	errTxRunnerRequired  = errors.New("transaction runner is required")
	errFileStoreRequired = errors.New("file store is required")
	errLoggerRequired    = errors.New("orders logger is required")
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// FileStore persists uploaded model files and returns their public URL.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, fileName string) (url string, size int64, err error)
}

// Notifier announces a created order. Failures are logged and swallowed.
type Notifier interface {
	SendOrderNotification(ctx context.Context, n telegram.OrderNotification) error
}

// Service defines order intake and lifecycle operations.
type Service interface {
	SubmitOrder(ctx context.Context, input SubmitOrderInput) (*SubmitOrderResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error)
}

type service struct {
	repo      Repository
	usersRepo users.Repository
	engine    *pricing.Engine
	tx        txRunner
	files     FileStore
	notifier  Notifier
	metrics   *metrics.IntakeMetrics
	logger    *logger.Logger
	now       func() time.Time
}

// NewService builds the orders service. notifier and intakeMetrics may be
// nil when the corresponding integrations are not configured.
func NewService(
	repo Repository,
	usersRepo users.Repository,
	engine *pricing.Engine,
	tx txRunner,
	files FileStore,
	notifier Notifier,
	intakeMetrics *metrics.IntakeMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, errRepoRequired
	}
	if usersRepo == nil {
		return nil, errUsersRepoRequired
	}
	if engine == nil {
		return nil, errPricingRequired
	}
	if tx == nil {
		return nil, errTxRunnerRequired
	}
	if files == nil {
		return nil, errFileStoreRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}
	return &service{
		repo:      repo,
		usersRepo: usersRepo,
		engine:    engine,
		tx:        tx,
		files:     files,
		notifier:  notifier,
		metrics:   intakeMetrics,
		logger:    logg,
		now:       time.Now,
	}, nil
}

// SubmitOrder runs the full intake pipeline. Individually invalid files
// are rejected and reported; the request only fails when no valid file
// remains or a required field is missing.
func (s *service) SubmitOrder(ctx context.Context, input SubmitOrderInput) (*SubmitOrderResult, error) {
	if err := validateRequiredFields(input); err != nil {
		return nil, err
	}

	if input.Quantity <= 0 {
		input.Quantity = 1
	}
	if input.DeliveryType == "" {
		input.DeliveryType = enums.DeliveryStandard
	}

	accepted, rejected, reasons := partitionFiles(input.Files)
	for _, reason := range reasons {
		s.metrics.IncFileRejected(reason)
	}
	if len(accepted) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid files in submission").
			WithDetails(map[string]any{"rejected_files": rejected})
	}

	unitPrice, itemTotal, err := s.engine.ItemTotal(input.WeightGrams, input.Material, input.Quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price submission")
	}

	now := s.now()
	orderNumber := NewOrderNumber(now)
	ctx = s.logger.WithOrderNumber(ctx, orderNumber)
	ctx = s.logger.WithCustomerEmail(ctx, input.Email)

	items, err := s.storeFiles(ctx, orderNumber, accepted, input, unitPrice, itemTotal)
	if err != nil {
		return nil, err
	}

	var totalAmount int64
	for _, item := range items {
		totalAmount += item.TotalPrice
	}

	order := &models.Order{
		OrderNumber:       orderNumber,
		Status:            enums.OrderStatusPending,
		DeliveryType:      input.DeliveryType,
		TotalAmount:       totalAmount,
		EstimatedDelivery: estimatedDelivery(now, input.DeliveryType),
	}
	if input.Notes != "" {
		notes := input.Notes
		order.Notes = &notes
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := s.usersRepo.WithTx(tx).UpsertByEmail(ctx, &models.User{
			Email:   input.Email,
			Name:    input.Name,
			Phone:   input.Phone,
			Address: input.Address,
		})
		if err != nil {
			return fmt.Errorf("upsert customer: %w", err)
		}
		order.UserID = user.ID
		order.User = user

		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist order")
	}
	order.Items = items

	s.metrics.IncOrderSubmitted(input.DeliveryType.String())
	s.logger.Info(ctx, "order submitted")

	s.notify(ctx, order, input)

	return &SubmitOrderResult{Order: order, RejectedFiles: rejected}, nil
}

// GetOrder returns one order with its customer and items.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find order")
	}
	return order, nil
}

// ListOrdersByEmail returns a customer's orders, newest first.
func (s *service) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	orders, err := s.repo.FindOrdersByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list orders")
	}
	return orders, nil
}

// UpdateOrder applies status and tracking number changes.
func (s *service) UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error) {
	updates := map[string]any{}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *input.Status))
		}
		updates["status"] = input.Status.String()
	}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	updates["updated_at"] = s.now()

	if err := s.repo.UpdateOrder(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update order")
	}
	return s.GetOrder(ctx, id)
}

func (s *service) storeFiles(ctx context.Context, orderNumber string, files []FileUpload, input SubmitOrderInput, unitPrice, itemTotal int64) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(files))
	for _, file := range files {
		storedName := fmt.Sprintf("%s-%s", orderNumber, file.FileName)
		url, size, err := s.files.Save(ctx, file.Content, storedName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "store uploaded file")
		}
		items = append(items, models.OrderItem{
			FileName:      file.FileName,
			FileURL:       url,
			FileSizeBytes: size,
			Material:      input.Material,
			Color:         input.Color,
			Quantity:      input.Quantity,
			WeightGrams:   input.WeightGrams,
			UnitPrice:     unitPrice,
			TotalPrice:    itemTotal,
		})
	}
	return items, nil
}

func (s *service) notify(ctx context.Context, order *models.Order, input SubmitOrderInput) {
	if s.notifier == nil {
		return
	}

	notification := telegram.OrderNotification{
		OrderNumber:  order.OrderNumber,
		CustomerName: input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		TotalAmount:  order.TotalAmount,
		DeliveryType: order.DeliveryType.String(),
		Notes:        input.Notes,
	}
	for _, item := range order.Items {
		notification.Items = append(notification.Items, telegram.NotificationItem{
			FileName: item.FileName,
			Material: item.Material.String(),
			Color:    item.Color,
			Quantity: item.Quantity,
			Price:    item.TotalPrice,
		})
	}

	if err := s.notifier.SendOrderNotification(ctx, notification); err != nil {
		s.metrics.IncNotificationFailure()
		s.logger.Error(ctx, "order notification failed", err)
	}
}

func validateRequiredFields(input SubmitOrderInput) error {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.Address) == "" {
		missing = append(missing, "address")
	}
	if input.WeightGrams <= 0 {
		missing = append(missing, "weight")
	}
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
		WithDetails(map[string]any{"missing_fields": missing})
}

// partitionFiles splits uploads into accepted and rejected. A file is
// rejected when its extension is not an allowed model format or it
// exceeds the size cap. reasons carries one coarse metric label per
// rejection cause (low cardinality, unlike the human-readable messages).
func partitionFiles(files []FileUpload) (accepted []FileUpload, rejected []RejectedFile, reasons []string) {
	for _, file := range files {
		kinds, err := validateFile(file)
		if err != nil {
			for _, cause := range multierr.Errors(err) {
				rejected = append(rejected, RejectedFile{FileName: file.FileName, Reason: cause.Error()})
			}
			reasons = append(reasons, kinds...)
			continue
		}
		accepted = append(accepted, file)
	}
	return accepted, rejected, reasons
}

func validateFile(file FileUpload) ([]string, error) {
	var err error
	var kinds []string
	ext := strings.ToLower(filepath.Ext(file.FileName))
	if _, ok := allowedExtensions[ext]; !ok {
		err = multierr.Append(err, fmt.Errorf("unsupported file type %q", ext))
		kinds = append(kinds, "unsupported_extension")
	}
	if file.SizeBytes > MaxFileSizeBytes {
		err = multierr.Append(err, fmt.Errorf("file exceeds %d byte limit", MaxFileSizeBytes))
		kinds = append(kinds, "too_large")
	}
	return kinds, err
}

func estimatedDelivery(createdAt time.Time, delivery enums.DeliveryType) time.Time {
	days := standardDeliveryDays
	if delivery == enums.DeliveryExpress {
		days = expressDeliveryDays
	}
	return createdAt.AddDate(0, 0, days)
}
