package services

import "github.com/david-mangena/e-commerce-site/internal/models"

// Catalog is the fixed product list of the sandbox storefront
var Catalog = []models.Product{
	{
		ID:          "sauce-labs-backpack",
		Name:        "Sauce Labs Backpack",
		Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection.",
		PriceCents:  2999,
	},
	{
		ID:          "sauce-labs-bike-light",
		Name:        "Sauce Labs Bike Light",
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night.",
		PriceCents:  999,
	},
	{
		ID:          "sauce-labs-bolt-t-shirt",
		Name:        "Sauce Labs Bolt T-Shirt",
		Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt.",
		PriceCents:  1599,
	},
	{
		ID:          "sauce-labs-fleece-jacket",
		Name:        "Sauce Labs Fleece Jacket",
		Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office.",
		PriceCents:  4999,
	},
	{
		ID:          "sauce-labs-onesie",
		Name:        "Sauce Labs Onesie",
		Description: "Rib snap infant onesie for the junior automation engineer in development.",
		PriceCents:  799,
	},
	{
		ID:          "test.allthethings()-t-shirt-(red)",
		Name:        "Test.allTheThings() T-Shirt (Red)",
		Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests.",
		PriceCents:  1599,
	},
}

// taxPercent is applied to the item total at checkout
const taxPercent = 8

// LookupProduct returns the catalog product with the given id
func LookupProduct(id string) (models.Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
