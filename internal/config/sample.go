package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# Storefront configuration
version: "1.0"

catalog:
  # Where products come from: http (catalog service) or file (local fixture)
  source: http

  # Catalog service root. The client calls GET /get-product and
  # POST /product/category below it.
  base_url: http://localhost:5000

  # JSON or YAML file with the same envelope as the service, used when
  # source is file
  fixture_path: ""

  # Reload the catalog whenever the fixture file changes
  watch_fixture: false

  # Upper bound for a single catalog load, 0 disables it
  timeout: 10s

  # Category menu, in display order. "all" is always available.
  categories:
    - Gift Boxes
    - Books
    - Stationery

cart:
  # Show the cart right after adding a product
  navigate_on_add: true
  currency_symbol: "₹"

output:
  # Format of the list command: text, json, markdown or csv
  default_format: text

  # auto, always or never
  color_mode: auto

  verbose: false

  # default, high-contrast or minimal
  theme: default

  # Where logs go while the interactive browser runs; empty discards them
  log_file: ""
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
catalog:
  source: http
  base_url: http://localhost:5000
  timeout: 10s
output:
  default_format: text
`
}
