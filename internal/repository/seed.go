package repository

import (
	"fmt"
	"github.com/kahvecikaan/luxegear/internal/domain"
)

func images(id, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://images.luxegear.store/products/%d/%d.jpg", id, i+1)
	}
	return out
}

// SeedProducts returns a fresh copy of the catalog fixture
func SeedProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID: 1, Name: "Aurora ANC Headphones", Category: domain.CategoryHeadphones,
			Description: "Over-ear wireless headphones with adaptive noise cancelling.",
			Price:       249.99, OriginalPrice: 299.99, Stock: 24, Rating: 4.8, ReviewCount: 1284,
			Tags: []string{"wireless", "anc", "bluetooth"}, Images: images(1, 3),
			IsFeatured: true, IsSale: true,
			Specs: domain.Specs{{Key: "Driver", Value: "40mm"}, {Key: "Battery", Value: "30h"}, {Key: "Weight", Value: "254g"}},
		},
		{
			ID: 2, Name: "Pulse Studio Monitor Headphones", Category: domain.CategoryHeadphones,
			Description: "Closed-back studio headphones tuned for flat response.",
			Price:       179.00, OriginalPrice: 179.00, Stock: 12, Rating: 4.6, ReviewCount: 542,
			Tags: []string{"wired", "studio"}, Images: images(2, 2),
			Specs: domain.Specs{{Key: "Driver", Value: "50mm"}, {Key: "Impedance", Value: "38Ω"}},
		},
		{
			ID: 3, Name: "Echo Buds Pro", Category: domain.CategoryHeadphones,
			Description: "True wireless earbuds with spatial audio.",
			Price:       129.99, OriginalPrice: 159.99, Stock: 3, Rating: 4.3, ReviewCount: 876,
			Tags: []string{"wireless", "earbuds", "bluetooth"}, Images: images(3, 2),
			IsSale: true, NewArrival: true,
			Specs: domain.Specs{{Key: "Battery", Value: "8h + 24h case"}, {Key: "Water resistance", Value: "IPX4"}},
		},
		{
			ID: 4, Name: "Nomad Open-Back Headphones", Category: domain.CategoryHeadphones,
			Description: "Lightweight open-back headphones for long listening sessions.",
			Price:       319.00, OriginalPrice: 349.00, Stock: 0, Rating: 4.7, ReviewCount: 211,
			Tags: []string{"wired", "audiophile"}, Images: images(4, 2),
			Specs: domain.Specs{{Key: "Driver", Value: "45mm planar"}, {Key: "Weight", Value: "320g"}},
		},
		{
			ID: 5, Name: "Onyx TKL Mechanical Keyboard", Category: domain.CategoryKeyboards,
			Description: "Tenkeyless board with hot-swappable switches and PBT keycaps.",
			Price:       149.99, OriginalPrice: 169.99, Stock: 18, Rating: 4.8, ReviewCount: 932,
			Tags: []string{"mechanical", "hot-swap", "rgb"}, Images: images(5, 3),
			IsFeatured: true, IsSale: true,
			Specs: domain.Specs{{Key: "Layout", Value: "TKL"}, {Key: "Switches", Value: "Linear"}, {Key: "Connection", Value: "USB-C"}},
		},
		{
			ID: 6, Name: "Lumen 75 Wireless Keyboard", Category: domain.CategoryKeyboards,
			Description: "75% gasket-mount keyboard with tri-mode connectivity.",
			Price:       189.00, OriginalPrice: 189.00, Stock: 9, Rating: 4.5, ReviewCount: 388,
			Tags: []string{"mechanical", "wireless", "bluetooth"}, Images: images(6, 2),
			NewArrival: true,
			Specs: domain.Specs{{Key: "Layout", Value: "75%"}, {Key: "Battery", Value: "4000mAh"}},
		},
		{
			ID: 7, Name: "Drift Low-Profile Keyboard", Category: domain.CategoryKeyboards,
			Description: "Slim aluminium keyboard with low-profile switches.",
			Price:       99.99, OriginalPrice: 119.99, Stock: 30, Rating: 3.9, ReviewCount: 164,
			Tags: []string{"low-profile", "wireless"}, Images: images(7, 2),
			IsSale: true,
			Specs: domain.Specs{{Key: "Layout", Value: "Full size"}, {Key: "Switches", Value: "Tactile"}},
		},
		{
			ID: 8, Name: "Forge Full-Size Keyboard", Category: domain.CategoryKeyboards,
			Description: "Full-size board with a numpad and a volume knob.",
			Price:       129.00, OriginalPrice: 129.00, Stock: 0, Rating: 4.2, ReviewCount: 97,
			Tags: []string{"mechanical", "rgb"}, Images: images(8, 1),
			Specs: domain.Specs{{Key: "Layout", Value: "Full size"}, {Key: "Switches", Value: "Clicky"}},
		},
		{
			ID: 9, Name: "Vista 27\" 4K Monitor", Category: domain.CategoryMonitors,
			Description: "27 inch IPS panel with factory calibration.",
			Price:       429.99, OriginalPrice: 499.99, Stock: 7, Rating: 4.7, ReviewCount: 610,
			Tags: []string{"4k", "ips", "usb-c"}, Images: images(9, 3),
			IsFeatured: true, IsSale: true,
			Specs: domain.Specs{{Key: "Resolution", Value: "3840x2160"}, {Key: "Refresh rate", Value: "60Hz"}, {Key: "Panel", Value: "IPS"}},
		},
		{
			ID: 10, Name: "Apex 32\" Curved Gaming Monitor", Category: domain.CategoryMonitors,
			Description: "1440p curved monitor at 165Hz.",
			Price:       379.00, OriginalPrice: 379.00, Stock: 5, Rating: 4.4, ReviewCount: 455,
			Tags: []string{"gaming", "curved", "165hz"}, Images: images(10, 2),
			NewArrival: true,
			Specs: domain.Specs{{Key: "Resolution", Value: "2560x1440"}, {Key: "Refresh rate", Value: "165Hz"}},
		},
		{
			ID: 11, Name: "Slate 24\" Office Monitor", Category: domain.CategoryMonitors,
			Description: "Everyday 1080p monitor with a height-adjustable stand.",
			Price:       159.99, OriginalPrice: 179.99, Stock: 40, Rating: 4.0, ReviewCount: 302,
			Tags: []string{"office", "1080p"}, Images: images(11, 1),
			IsSale: true,
			Specs: domain.Specs{{Key: "Resolution", Value: "1920x1080"}, {Key: "Stand", Value: "Height adjustable"}},
		},
		{
			ID: 12, Name: "Glide Pro Wireless Mouse", Category: domain.CategoryMice,
			Description: "Ergonomic mouse with a 26K DPI sensor.",
			Price:       89.99, OriginalPrice: 99.99, Stock: 50, Rating: 4.6, ReviewCount: 1520,
			Tags: []string{"wireless", "ergonomic", "gaming"}, Images: images(12, 2),
			IsFeatured: true, IsSale: true,
			Specs: domain.Specs{{Key: "Sensor", Value: "26K DPI"}, {Key: "Weight", Value: "63g"}},
		},
		{
			ID: 13, Name: "Feather Ultralight Mouse", Category: domain.CategoryMice,
			Description: "49 gram esports mouse with PTFE feet.",
			Price:       69.00, OriginalPrice: 69.00, Stock: 4, Rating: 4.5, ReviewCount: 720,
			Tags: []string{"wired", "gaming", "ultralight"}, Images: images(13, 2),
			NewArrival: true,
			Specs: domain.Specs{{Key: "Weight", Value: "49g"}, {Key: "Cable", Value: "Paracord"}},
		},
		{
			ID: 14, Name: "Orbit Vertical Mouse", Category: domain.CategoryMice,
			Description: "Vertical mouse that keeps the wrist in a neutral position.",
			Price:       49.99, OriginalPrice: 59.99, Stock: 22, Rating: 3.8, ReviewCount: 143,
			Tags: []string{"ergonomic", "wireless"}, Images: images(14, 1),
			IsSale: true,
			Specs: domain.Specs{{Key: "Angle", Value: "57°"}, {Key: "Battery", Value: "AA"}},
		},
		{
			ID: 15, Name: "Terra Desk Mat XL", Category: domain.CategoryAccessories,
			Description: "Stitched-edge desk mat, 900 by 400 mm.",
			Price:       29.99, OriginalPrice: 34.99, Stock: 80, Rating: 4.4, ReviewCount: 890,
			Tags: []string{"desk", "mousepad"}, Images: images(15, 1),
			IsSale: true,
			Specs: domain.Specs{{Key: "Size", Value: "900x400mm"}, {Key: "Thickness", Value: "4mm"}},
		},
		{
			ID: 16, Name: "Halo Headphone Stand", Category: domain.CategoryAccessories,
			Description: "Aluminium headphone stand with a USB hub.",
			Price:       39.00, OriginalPrice: 39.00, Stock: 15, Rating: 4.1, ReviewCount: 233,
			Tags: []string{"desk", "headphones", "usb"}, Images: images(16, 2),
			NewArrival: true,
			Specs: domain.Specs{{Key: "Material", Value: "Aluminium"}, {Key: "Ports", Value: "2x USB-A"}},
		},
	}
}
