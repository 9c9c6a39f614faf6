package model

// Package is a priced service bundle shown in the public calculator.
type Package struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Addon is an optional extra the customer can attach to a package.
type Addon struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PackageAddon joins a package to an addon. IsLocked means the addon is
// bundled into the package and cannot be removed by the customer.
type PackageAddon struct {
	PackageID uint64 `json:"packageId"`
	AddonID   uint64 `json:"addonId"`
	IsLocked  bool   `json:"isLocked"`
}

// PackageWithAddons is the public catalog shape: a package together with its
// addons and lock flags.
type PackageWithAddons struct {
	Package
	Addons []PackageAddonDetail `json:"addons"`
}

// PackageAddonDetail flattens an addon and its lock flag for one package.
type PackageAddonDetail struct {
	Addon
	IsLocked bool `json:"isLocked"`
}
