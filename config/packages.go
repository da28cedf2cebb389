package config

import (
	"fmt"
	"os"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"

	"gopkg.in/yaml.v3"
)

type packageFile struct {
	Packages []models.Package `yaml:"packages"`
}

// DefaultPackages is served when no catalog file is configured.
var DefaultPackages = []models.Package{
	{ID: "si-basic", Kind: forms.StartupIndia, Name: "Startup India Basic", Price: 2999, Features: []string{"DPIIT recognition filing", "Document review"}},
	{ID: "si-premium", Kind: forms.StartupIndia, Name: "Startup India Premium", Price: 5999, Features: []string{"DPIIT recognition filing", "Pitch deck review", "Tax exemption application"}},
	{ID: "gst-basic", Kind: forms.GST, Name: "GST Registration", Price: 1499, Features: []string{"GSTIN application", "ARN tracking"}},
	{ID: "gst-plus", Kind: forms.GST, Name: "GST Registration + 3 months filing", Price: 3999, Features: []string{"GSTIN application", "GSTR-1 and GSTR-3B filing"}},
	{ID: "pvt-basic", Kind: forms.PrivateLimited, Name: "Private Limited Incorporation", Price: 6999, Features: []string{"DSC for two directors", "DIN", "Name approval", "MoA and AoA"}},
	{ID: "prop-basic", Kind: forms.Proprietorship, Name: "Proprietorship Setup", Price: 999, Features: []string{"Udyam registration", "Shop act guidance"}},
}

// LoadPackages reads the package catalog from a YAML file; an empty path
// returns the default catalog.
func LoadPackages(path string) ([]models.Package, error) {
	if path == "" {
		return DefaultPackages, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read packages file: %w", err)
	}
	var doc packageFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse packages file: %w", err)
	}
	seen := map[string]bool{}
	for i, p := range doc.Packages {
		if p.ID == "" {
			return nil, fmt.Errorf("package %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate package id %q", p.ID)
		}
		seen[p.ID] = true
		if _, err := forms.ParseKind(string(p.Kind)); err != nil {
			return nil, fmt.Errorf("package %q: %w", p.ID, err)
		}
	}
	return doc.Packages, nil
}
