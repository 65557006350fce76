// Package repository persists the product catalog in DynamoDB. The
// in-memory inventory is the source of truth during a session; this layer
// loads it at startup and writes mutations back.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
	pkgconfig "github.com/cloud-wave-best-zizon/checkout-service/pkg/config"
)

var ErrProductNotFound = errors.New("product not found")

// productItem is the stored shape of a product. Prices are strings to keep
// decimal values exact; expiration dates are stored as dates only.
type productItem struct {
	ProductID      int       `dynamodbav:"product_id"`
	Name           string    `dynamodbav:"name"`
	Price          string    `dynamodbav:"price"`
	Stock          int       `dynamodbav:"stock"`
	CategoryMain   string    `dynamodbav:"category_main"`
	CategorySub    string    `dynamodbav:"category_sub,omitempty"`
	Brand          string    `dynamodbav:"brand,omitempty"`
	Variant        string    `dynamodbav:"variant,omitempty"`
	ExpirationDate string    `dynamodbav:"expiration_date,omitempty"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at"`
}

const expirationLayout = "2006-01-02"

func toItem(p domain.Product) productItem {
	item := productItem{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Price:        p.Price.String(),
		Stock:        p.Stock,
		CategoryMain: p.Category.Main,
		CategorySub:  p.Category.Sub,
		Brand:        p.Brand,
		Variant:      p.Variant,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.ExpirationDate != nil {
		item.ExpirationDate = p.ExpirationDate.Format(expirationLayout)
	}
	return item
}

func fromItem(item productItem) (domain.Product, error) {
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid stored price %q for product %d: %w", item.Price, item.ProductID, err)
	}
	p := domain.Product{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     price,
		Stock:     item.Stock,
		Category:  domain.Category{Main: item.CategoryMain, Sub: item.CategorySub},
		Brand:     item.Brand,
		Variant:   item.Variant,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.ExpirationDate != "" {
		exp, err := time.Parse(expirationLayout, item.ExpirationDate)
		if err != nil {
			return domain.Product{}, fmt.Errorf("invalid stored expiration %q for product %d: %w", item.ExpirationDate, item.ProductID, err)
		}
		p.ExpirationDate = &exp
	}
	return p, nil
}

type CatalogRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}

func NewCatalogRepository(client *dynamodb.Client, tableName string) *CatalogRepository {
	return &CatalogRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *CatalogRepository) key(productID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"product_id": &types.AttributeValueMemberN{Value: strconv.Itoa(productID)},
	}
}

func (r *CatalogRepository) PutProduct(ctx context.Context, product domain.Product) error {
	av, err := attributevalue.MarshalMap(toItem(product))
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(productID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var item productItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	product, err := fromItem(item)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts scans the full catalog table. Catalogs are small enough for a
// paged scan at session start.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}

		var items []productItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
		}
		for _, item := range items {
			product, err := fromItem(item)
			if err != nil {
				return nil, err
			}
			products = append(products, product)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return products, nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, productID int) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(productID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// UpdateStock writes back the authoritative in-memory stock level for one
// product. The condition guards against resurrecting a deleted item.
func (r *CatalogRepository) UpdateStock(ctx context.Context, productID, stock int) error {
	update := expression.Set(
		expression.Name("stock"),
		expression.Value(stock),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)

	condition := expression.AttributeExists(expression.Name("product_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(productID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update stock: %w", err)
	}

	return nil
}

// SaveAll writes every product back, serving Inventory.Export persistence.
func (r *CatalogRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		if err := r.PutProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
