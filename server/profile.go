package server

import "github.com/hupe1980/shopmesh/catalog"

// Profile is the static UCP capability document served at
// ucp://discovery/profile. The "ucp" envelope key matches the discovery
// contract agents expect.
type Profile struct {
	UCP ProfileBody `json:"ucp"`
}

// ProfileBody describes the merchant and the capabilities this service
// exposes.
type ProfileBody struct {
	Version      string   `json:"version"`
	Merchant     Merchant `json:"merchant"`
	Capabilities []string `json:"capabilities"`
	Currency     string   `json:"currency"`
}

// Merchant identifies the storefront behind the service.
type Merchant struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// DefaultProfile returns the built-in demo merchant profile.
func DefaultProfile() Profile {
	return Profile{
		UCP: ProfileBody{
			Version: "2026-01",
			Merchant: Merchant{
				Name: "ShopMesh Demo Pantry",
			},
			Capabilities: []string{
				"shopping.search",
				"shopping.checkout",
				"shopping.payment",
				"shopping.orders",
			},
			Currency: catalog.DefaultCurrency,
		},
	}
}
