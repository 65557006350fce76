// Package service owns the store's live state: the injected inventory,
// customer sessions, and the sales history. It is the mutual-exclusion
// boundary around checkout when the core is exposed over HTTP.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/checkout"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/inventory"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/receipt"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmployeeRequired    = errors.New("operation requires employee role")
	ErrInvalidRole         = errors.New("invalid role")
)

// Session is one authenticated user's in-memory state. Customers get a cart
// and optionally a membership card; employees get neither.
type Session struct {
	ID   string
	User domain.User
	Cart *domain.Cart
	Card *domain.MembershipCard
}

// CatalogStore is the persistence surface the service writes catalog
// mutations back to. Nil-able: local mode runs without one.
type CatalogStore interface {
	PutProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID int) error
	UpdateStock(ctx context.Context, productID, stock int) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// TransactionSink receives the flat record of every completed transaction.
type TransactionSink interface {
	PublishTransactionRecorded(ctx context.Context, record domain.TransactionRecord) error
}

type StoreService struct {
	inv    *inventory.Inventory
	engine *checkout.Engine
	store  CatalogStore
	sink   TransactionSink
	logger *zap.Logger

	mu           sync.RWMutex
	sessions     map[string]*Session
	transactions []*domain.Transaction
	txByID       map[string]*domain.Transaction
}

func New(inv *inventory.Inventory, engine *checkout.Engine, store CatalogStore, sink TransactionSink, logger *zap.Logger) *StoreService {
	return &StoreService{
		inv:      inv,
		engine:   engine,
		store:    store,
		sink:     sink,
		logger:   logger,
		sessions: make(map[string]*Session),
		txByID:   make(map[string]*domain.Transaction),
	}
}

// LoadCatalog pulls the persisted catalog into the inventory. Without a
// catalog store the inventory keeps whatever was seeded.
func (s *StoreService) LoadCatalog(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}
	s.inv.Load(products)
	s.logger.Info("Catalog loaded", zap.Int("products", len(products)))
	return nil
}

func (s *StoreService) persistProduct(ctx context.Context, product domain.Product) {
	if s.store == nil {
		return
	}
	if err := s.store.PutProduct(ctx, product); err != nil {
		s.logger.Warn("Failed to persist product",
			zap.Int("product_id", product.ProductID),
			zap.Error(err))
	}
}

func (s *StoreService) persistStock(ctx context.Context, productID, stock int) {
	if s.store == nil {
		return
	}
	if err := s.store.UpdateStock(ctx, productID, stock); err != nil {
		s.logger.Warn("Failed to persist stock level",
			zap.Int("product_id", productID),
			zap.Error(err))
	}
}

// ---- catalog management (employee only) ----

func (s *StoreService) CreateProduct(ctx context.Context, user domain.User, req domain.CreateProductRequest) (*domain.Product, error) {
	if !user.CanManageInventory() {
		return nil, ErrEmployeeRequired
	}

	product := domain.Product{
		ProductID:      req.ProductID,
		Name:           req.Name,
		Price:          req.Price,
		Stock:          req.Stock,
		Category:       domain.Category{Main: req.CategoryMain, Sub: req.CategorySub},
		Brand:          req.Brand,
		Variant:        req.Variant,
		ExpirationDate: req.ExpirationDate,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.inv.Add(product); err != nil {
		return nil, err
	}
	s.persistProduct(ctx, product)

	s.logger.Info("Product created",
		zap.Int("product_id", product.ProductID),
		zap.Int("initial_stock", product.Stock))

	created, err := s.inv.Get(product.ProductID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *StoreService) GetProduct(productID int) (*domain.Product, error) {
	return s.inv.Get(productID)
}

func (s *StoreService) ListProducts() []*domain.Product {
	return s.inv.Products()
}

func (s *StoreService) Shelves() []inventory.Shelf {
	return s.inv.Shelves()
}

func (s *StoreService) DeleteProduct(ctx context.Context, user domain.User, productID int) error {
	if !user.CanManageInventory() {
		return ErrEmployeeRequired
	}
	if err := s.inv.Remove(productID); err != nil {
		return err
	}
	if s.store != nil {
		if err := s.store.DeleteProduct(ctx, productID); err != nil {
			s.logger.Warn("Failed to delete persisted product",
				zap.Int("product_id", productID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *StoreService) Restock(ctx context.Context, user domain.User, productID, quantity int) (*domain.Product, error) {
	if !user.CanManageInventory() {
		return nil, ErrEmployeeRequired
	}
	if err := s.inv.Restock(productID, quantity); err != nil {
		return nil, err
	}
	product, err := s.inv.Get(productID)
	if err != nil {
		return nil, err
	}
	s.persistStock(ctx, productID, product.Stock)

	s.logger.Info("Product restocked",
		zap.Int("product_id", productID),
		zap.Int("added", quantity),
		zap.Int("stock", product.Stock))

	return product, nil
}

func (s *StoreService) LowStock(user domain.User) ([]*domain.Product, error) {
	if !user.CanManageInventory() {
		return nil, ErrEmployeeRequired
	}
	return s.inv.LowStock(), nil
}

func (s *StoreService) ExpiringWithin(user domain.User, days int) ([]*domain.Product, error) {
	if !user.CanManageInventory() {
		return nil, ErrEmployeeRequired
	}
	return s.inv.ExpiringWithin(days), nil
}

// ---- sessions and carts ----

// StartSession registers a user session. A customer with a card number gets
// a membership card ledger seeded with the supplied balance.
func (s *StoreService) StartSession(req domain.StartSessionRequest) (*Session, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	session := &Session{
		ID:   uuid.NewString(),
		User: domain.User{Name: req.Name, Role: req.Role},
		Cart: domain.NewCart(),
	}
	if req.CardNumber != "" {
		session.Card = domain.NewMembershipCard(req.CardNumber, req.CardPoints)
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Session started",
		zap.String("session_id", session.ID),
		zap.String("role", string(session.User.Role)),
		zap.Bool("member", session.Card != nil))

	return session, nil
}

func (s *StoreService) GetSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *StoreService) AddToCart(sessionID string, productID, quantity int) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	product, err := s.inv.Get(productID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Cart.Add(product, quantity)
	return nil
}

// UpdateCartItem sets a line's quantity. Non-positive quantities mean the
// line is removed; a line is never left at zero.
func (s *StoreService) UpdateCartItem(sessionID string, productID, quantity int) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		session.Cart.Remove(productID)
		return nil
	}
	return session.Cart.SetQuantity(productID, quantity)
}

func (s *StoreService) RemoveFromCart(sessionID string, productID int) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Cart.Remove(productID)
	return nil
}

func (s *StoreService) CartSummary(sessionID string) (domain.CartResponse, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return domain.CartResponse{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := domain.CartResponse{
		Items:    []domain.CartLineResponse{},
		Subtotal: session.Cart.Subtotal(),
	}
	for _, line := range session.Cart.Lines() {
		resp.Items = append(resp.Items, domain.CartLineResponse{
			ProductID: line.Product.ProductID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
		})
	}
	return resp, nil
}

// ---- checkout ----

func checkoutOptions(req domain.CheckoutRequest) checkout.Options {
	return checkout.Options{
		SeniorDiscount:  req.SeniorDiscount,
		UseMemberPoints: req.UseMemberPoints,
	}
}

// QuoteCheckout prices the session's cart without committing anything.
func (s *StoreService) QuoteCheckout(sessionID string, req domain.CheckoutRequest) (checkout.Quote, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return checkout.Quote{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Quote(session.Cart, session.Card, checkoutOptions(req)), nil
}

// Checkout runs the purchase for one session. Checkouts are serialized: the
// core assumes a single actor per cart, and this lock is the boundary that
// keeps the assumption true behind HTTP.
func (s *StoreService) Checkout(ctx context.Context, sessionID string, req domain.CheckoutRequest) (*domain.Transaction, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	tx, err := s.engine.Checkout(session.User.Name, session.Cart, session.Card, req.AmountReceived, checkoutOptions(req))
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	// The committed cart lives on only inside the transaction snapshot.
	session.Cart = domain.NewCart()
	s.transactions = append(s.transactions, tx)
	s.txByID[tx.ID] = tx
	s.mu.Unlock()

	for _, item := range tx.Items {
		if product, err := s.inv.Get(item.ProductID); err == nil {
			s.persistStock(ctx, product.ProductID, product.Stock)
		}
	}

	if s.sink != nil {
		if err := s.sink.PublishTransactionRecorded(ctx, tx.Record()); err != nil {
			s.logger.Warn("Failed to publish transaction record",
				zap.String("transaction_id", tx.ID),
				zap.Error(err))
		}
	}

	return tx, nil
}

// ---- transactions and receipts ----

func (s *StoreService) GetTransaction(transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txByID[transactionID]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// ListTransactions returns the flat sales-history records, oldest first.
func (s *StoreService) ListTransactions() []domain.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.TransactionRecord, 0, len(s.transactions))
	for _, tx := range s.transactions {
		records = append(records, tx.Record())
	}
	return records
}

func (s *StoreService) Receipt(transactionID string) (string, error) {
	tx, err := s.GetTransaction(transactionID)
	if err != nil {
		return "", err
	}
	return receipt.Render(tx), nil
}
