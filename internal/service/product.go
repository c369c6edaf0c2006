package service

import (
	"context"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/catalog"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/repository"
)

// Collection sizes used by the home and product pages
const (
	HomeCollectionSize = 4
	RelatedSize        = 4
)

type ProductService interface {
	Query(ctx context.Context, q catalog.Query) (catalog.Page, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	Related(ctx context.Context, product *domain.Product) (Products, error)
	Collections(ctx context.Context) (*Collections, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	AddProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type productService struct {
	repo     repository.ProductRepository
	eventBus events.Publisher
	logger   hclog.Logger
}

type Products []*domain.Product

// Collections are the product rows of the home page
type Collections struct {
	Featured    Products `json:"featured"`
	NewArrivals Products `json:"newArrivals"`
	OnSale      Products `json:"onSale"`
}

func NewProductService(
	repo repository.ProductRepository,
	eventBus events.Publisher,
	logger hclog.Logger) ProductService {
	return &productService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *productService) Query(ctx context.Context, q catalog.Query) (catalog.Page, error) {
	s.logger.Debug("Querying products", "search", q.Filter.Search, "sort", q.Sort, "page", q.Page)

	products, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("Unable to get products", "error", err)
		return catalog.Page{}, err
	}

	return catalog.Run(products, q), nil
}

func (s *productService) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	s.logger.Debug("Getting product by ID", "id", id)

	product, err := s.repo.ByID(ctx, id)
	if err != nil {
		s.logger.Debug("Unable to get the product by ID", "id", id, "error", err)
		return nil, err
	}

	return product, nil
}

// Related returns up to RelatedSize other products of the same category
func (s *productService) Related(ctx context.Context, product *domain.Product) (Products, error) {
	products, err := s.repo.ByCategory(ctx, product.Category)
	if err != nil {
		s.logger.Error("Unable to get products", "category", product.Category, "error", err)
		return nil, err
	}
	return catalog.Related(products, product, RelatedSize), nil
}

func (s *productService) Collections(ctx context.Context) (*Collections, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("Unable to get products", "error", err)
		return nil, err
	}

	return &Collections{
		Featured:    catalog.Featured(products, HomeCollectionSize),
		NewArrivals: catalog.NewArrivals(products, HomeCollectionSize),
		OnSale:      catalog.OnSale(products, HomeCollectionSize),
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	s.logger.Debug("Updating product", "id", product.ID)

	err := s.repo.Update(ctx, product)
	if err != nil {
		s.logger.Error("Unable to update product", "id", product.ID, "error", err)
		return err
	}

	// Publish an event for product update
	s.eventBus.Publish(events.ProductUpdated{ProductID: product.ID})
	return nil
}

func (s *productService) AddProduct(ctx context.Context, product *domain.Product) error {
	s.logger.Debug("Adding new product", "name", product.Name)

	err := s.repo.Add(ctx, product)
	if err != nil {
		s.logger.Error("Unable to add product", "name", product.Name, "error", err)
		return err
	}

	s.eventBus.Publish(events.ProductAdded{ProductID: product.ID})
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int) error {
	s.logger.Debug("Deleting product", "id", id)

	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Unable to delete product", "id", id, "error", err)
		return err
	}

	s.eventBus.Publish(events.ProductDeleted{ProductID: id})
	return nil
}
