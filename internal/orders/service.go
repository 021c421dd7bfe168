package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/internal/catalog"
	"github.com/ravetagbd/ravetag-backend/internal/customers"
	"github.com/ravetagbd/ravetag-backend/pkg/db"
	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order placement and lifecycle operations.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error)
	Cancel(ctx context.Context, code string) (*OrderDTO, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDTO, error)
	List(ctx context.Context, filters ListFilters) ([]OrderDTO, error)
}

type service struct {
	repo         Repository
	catalogRepo  catalog.Repository
	customerRepo customers.Repository
	tx           txRunner
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, catalogRepo catalog.Repository, customerRepo customers.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:         repo,
		catalogRepo:  catalogRepo,
		customerRepo: customerRepo,
		tx:           tx,
	}, nil
}

// Place runs the whole placement in one awaited transaction: line items are
// priced from the current offer price, every named stock is decremented with
// a non-negative guard, product sales counters are bumped, the order row is
// inserted and the customer record upserted. Any stock failure rejects the
// whole order and rolls everything back.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error) {
	if err := validatePlaceInput(input); err != nil {
		return nil, err
	}

	var placedID uuid.UUID
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cat := s.catalogRepo.WithTx(tx)
		cust := s.customerRepo.WithTx(tx)

		lineItems := make([]models.OrderLineItem, 0, len(input.Items))
		total := 0
		for _, item := range input.Items {
			product, err := cat.FindProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
						WithDetails(map[string]any{"product_id": item.ProductID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}

			outcome, err := cat.DecrementStock(ctx, item.ProductID, item.VariantName, item.Size, item.Quantity)
			if err != nil {
				// The guarded UPDATE normally refuses the row first; the CHECK
				// constraint is the schema-level backstop for the same rule.
				if db.IsCheckViolation(err, "variant_sizes_stock_check") {
					return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
						WithDetails(itemDetails(item))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			switch outcome {
			case enums.MutationOutcomeNotFound:
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant size not found").
					WithDetails(itemDetails(item))
			case enums.MutationOutcomeNoChange:
				return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
					WithDetails(itemDetails(item))
			}

			if err := cat.BumpSales(ctx, item.ProductID, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bump product sales")
			}

			lineItems = append(lineItems, models.OrderLineItem{
				ProductID:      product.ID,
				ProductTitle:   product.Title,
				VariantName:    item.VariantName,
				Size:           item.Size,
				Quantity:       item.Quantity,
				UnitPriceCents: product.OfferPriceCents,
			})
			total += product.OfferPriceCents * item.Quantity
		}

		order := &models.Order{
			Code:          newOrderCode(),
			CustomerPhone: strings.TrimSpace(input.Customer.Phone),
			CustomerName:  strings.TrimSpace(input.Customer.Name),
			Address:       strings.TrimSpace(input.Customer.Address),
			Status:        enums.OrderStatusPending,
			TotalCents:    total,
			LineItems:     lineItems,
		}
		created, err := repo.CreateOrder(ctx, order)
		if err != nil {
			if db.IsUniqueViolation(err, "orders_code_key") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order code collision, retry placement")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}
		placedID = created.ID

		customer := &models.Customer{
			Phone:    order.CustomerPhone,
			Name:     order.CustomerName,
			Email:    input.Customer.Email,
			Address:  order.Address,
			City:     input.Customer.City,
			District: input.Customer.District,
		}
		if _, err := cust.UpsertByPhone(ctx, customer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert customer")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}

	placed, err := s.repo.FindByID(ctx, placedID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load placed order")
	}
	return NewOrderDTO(placed), nil
}

// Cancel sets status=cancelled for the order matching the code and returns
// every line item's quantity to stock.
func (s *service) Cancel(ctx context.Context, code string) (*OrderDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order code required")
	}

	var cancelledID uuid.UUID
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cat := s.catalogRepo.WithTx(tx)

		order, err := repo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no order matches the code")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		// The loaded row is only a snapshot; a concurrent cancel may have won
		// between the read and this write. MarkCancelled is the real gate, so
		// a losing cancel never reaches the restock below.
		outcome, err := repo.MarkCancelled(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		switch outcome {
		case enums.MutationOutcomeNotFound:
			return pkgerrors.New(pkgerrors.CodeNotFound, "no order matches the code")
		case enums.MutationOutcomeNoChange:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already cancelled")
		}

		for _, item := range order.LineItems {
			if _, err := cat.IncrementStock(ctx, item.ProductID, item.VariantName, item.Size, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock item")
			}
			if err := cat.BumpSales(ctx, item.ProductID, -item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unwind product sales")
			}
		}

		cancelledID = order.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}

	cancelled, err := s.repo.FindByID(ctx, cancelledID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cancelled order")
	}
	return NewOrderDTO(cancelled), nil
}

// ChangeStatus moves an order to any known status. Transitions are otherwise
// unrestricted; restocking happens only through Cancel.
func (s *service) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	outcome, err := s.repo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if outcome == enums.MutationOutcomeNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewOrderDTO(order), nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewOrderDTO(&rows[i]))
	}
	return dtos, nil
}

func validatePlaceInput(input PlaceOrderInput) error {
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	if strings.TrimSpace(input.Customer.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(input.Customer.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer address required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if strings.TrimSpace(item.VariantName) == "" || strings.TrimSpace(item.Size) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item variant and size required")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}
	return nil
}

func itemDetails(item ItemInput) map[string]any {
	return map[string]any{
		"product_id": item.ProductID,
		"variant":    item.VariantName,
		"size":       item.Size,
		"quantity":   item.Quantity,
	}
}

func newOrderCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "RT-" + strings.ToUpper(raw[:10])
}
