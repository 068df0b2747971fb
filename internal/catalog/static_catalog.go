package catalog

import (
	"context"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

// staticCatalog serves the built-in training products from memory. Used when
// no catalog database is configured.
type staticCatalog struct {
	order    []string
	products map[string]*domain.Product
}

func NewStaticCatalog() Catalog {
	c := &staticCatalog{products: make(map[string]*domain.Product)}
	for _, p := range trainingProducts {
		c.order = append(c.order, p.ID)
		c.products[p.ID] = p
	}
	return c
}

func (c *staticCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *staticCatalog) ListProducts(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(c.order))
	for _, id := range c.order {
		cp := *c.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

var trainingProducts = []*domain.Product{
	{
		ID:          "prod_001",
		Icon:        "📊",
		Name:        "GA4 Fundamentals Course",
		Category:    "Courses",
		Price:       99.00,
		Description: "Master the basics of Google Analytics 4 with comprehensive hands-on exercises and real-world scenarios.",
		Details: []domain.ProductDetail{
			{Label: "Duration", Value: "6 hours of video content"},
			{Label: "Level", Value: "Beginner to Intermediate"},
			{Label: "Certificate", Value: "Yes"},
			{Label: "Access", Value: "Lifetime"},
		},
		Related: []string{"prod_002", "prod_004"},
	},
	{
		ID:          "prod_002",
		Icon:        "📘",
		Name:        "GTM Implementation Guide",
		Category:    "Guides",
		Price:       49.00,
		Description: "Step-by-step guide to Google Tag Manager setup and configuration, focusing on best practices and debugging.",
		Details: []domain.ProductDetail{
			{Label: "Format", Value: "PDF Ebook"},
			{Label: "Pages", Value: "150+"},
			{Label: "Includes", Value: "Checklists and Templates"},
		},
		Related: []string{"prod_001", "prod_005"},
	},
	{
		ID:          "prod_003",
		Icon:        "🛒",
		Name:        "E-commerce Tracking Template",
		Category:    "Templates",
		Price:       79.00,
		Description: "Pre-configured GTM container with all standard GA4 e-commerce tags and variables ready to import.",
		Details: []domain.ProductDetail{
			{Label: "Format", Value: "JSON Container File"},
			{Label: "Events", Value: "15+ Pre-configured Events"},
			{Label: "Support", Value: "Setup Guide Included"},
		},
		Related: []string{"prod_006", "prod_001"},
	},
	{
		ID:          "prod_004",
		Icon:        "🎯",
		Name:        "Advanced Event Tracking Workshop",
		Category:    "Courses",
		Price:       149.00,
		Description: "Deep dive into custom events, parameters, and user properties for complex tracking needs.",
		Details: []domain.ProductDetail{
			{Label: "Duration", Value: "10 hours"},
			{Label: "Level", Value: "Intermediate to Advanced"},
			{Label: "Focus", Value: "Data Layer Scripting"},
		},
		Related: []string{"prod_005", "prod_006"},
	},
	{
		ID:          "prod_005",
		Icon:        "🔧",
		Name:        "Data Layer Debugging Toolkit",
		Category:    "Tools",
		Price:       29.00,
		Description: "A set of scripts and browser extensions to diagnose GTM and data layer issues quickly and efficiently.",
		Details: []domain.ProductDetail{
			{Label: "Format", Value: "Tool Bundle"},
			{Label: "License", Value: "Perpetual"},
			{Label: "Updates", Value: "1 Year Free Updates"},
		},
		Related: []string{"prod_002", "prod_004"},
	},
	{
		ID:          "prod_006",
		Icon:        "📦",
		Name:        "Complete Analytics Bundle",
		Category:    "Bundles",
		Price:       299.00,
		Description: "All courses, guides, and templates in one comprehensive package for total analytics mastery.",
		Details: []domain.ProductDetail{
			{Label: "Value", Value: "Best Value (30% Savings)"},
			{Label: "Includes", Value: "All 5 Products"},
		},
		Related: []string{"prod_001", "prod_003"},
	},
}
