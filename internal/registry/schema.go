package registry

import (
	"fmt"
	"strconv"
	"strings"
)

const tableName = "DbSet"

type columnKind int

const (
	textColumn columnKind = iota
	integerColumn
)

type column struct {
	name     string
	kind     columnKind
	required bool
	// key columns must carry a non-empty value for the row to decode.
	key bool
}

type contract[T any] struct {
	registry string
	columns  []column
	assign   func(rec *T, name string, value any) error
	// damaged builds the placeholder kept for a row whose key decodes but
	// whose other columns do not. Nil drops such rows.
	damaged func(key string) T
}

var productContract = contract[Product]{
	registry: "Product",
	columns: []column{
		{name: "Id", required: true},
		{name: "DateTime"},
		{name: "Background"},
		{name: "Background2"},
		{name: "IsDeveloper", kind: integerColumn},
		{name: "ProductAsin", required: true, key: true},
		{name: "ProductAsinVersion"},
		{name: "ProductDescription"},
		{name: "ProductDomain"},
		{name: "ProductIconUrl", required: true},
		{name: "ProductIdStr"},
		{name: "ProductLine"},
		{name: "ProductPublisher"},
		{name: "ProductSku"},
		{name: "ProductTitle", required: true},
		{name: "ScreenshotsJson"},
		{name: "State"},
		{name: "VideosJson"},
	},
	assign: assignProduct,
}

var installContract = contract[Install]{
	registry: "Install",
	columns: []column{
		{name: "Id"},
		{name: "InstallDate"},
		{name: "InstallDirectory", required: true},
		{name: "InstallVersion"},
		{name: "InstallVersionName"},
		{name: "Installed", kind: integerColumn, required: true},
		{name: "LastKnownLatestVersion"},
		{name: "LastKnownLatestVersionTimestamp"},
		{name: "LastUpdated"},
		{name: "LastPlayed"},
		{name: "ProductAsin", required: true, key: true},
		{name: "ProductTitle"},
	},
	assign: assignInstall,
	damaged: func(asin string) Install {
		return Install{ASIN: asin, Installed: InstallStateDamaged}
	},
}

// normalizeColumn folds a column name so ProductAsin, productasin and
// product_asin compare equal.
func normalizeColumn(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
}

// binding pairs a contract column with the actual column name found in the table.
type binding struct {
	column column
	actual string
}

// bind matches table columns against the contract. Unknown table columns are
// ignored; missing required columns are returned by contract name.
func (c contract[T]) bind(tableColumns []string) ([]binding, []string) {
	present := make(map[string]string, len(tableColumns))
	for _, name := range tableColumns {
		key := normalizeColumn(name)
		if _, ok := present[key]; !ok {
			present[key] = name
		}
	}

	var (
		bindings []binding
		missing  []string
	)
	for _, col := range c.columns {
		actual, ok := present[normalizeColumn(col.name)]
		if !ok {
			if col.required {
				missing = append(missing, col.name)
			}
			continue
		}
		bindings = append(bindings, binding{column: col, actual: actual})
	}
	return bindings, missing
}

func selectStatement(bindings []binding) string {
	quoted := make([]string, len(bindings))
	for i, b := range bindings {
		quoted[i] = `"` + strings.ReplaceAll(b.actual, `"`, `""`) + `"`
	}
	return fmt.Sprintf(`SELECT %s FROM "%s"`, strings.Join(quoted, ", "), tableName)
}

func textValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported text value %T", value)
	}
}

func integerValue(value any) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("non-integral value %v", v)
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported integer value %T", value)
	}
}

func assignProduct(p *Product, name string, value any) error {
	if name == "IsDeveloper" {
		n, err := integerValue(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.IsDeveloper = n
		return nil
	}
	s, err := textValue(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	switch name {
	case "Id":
		p.ID = s
	case "DateTime":
		p.DateTime = s
	case "Background":
		p.Background = s
	case "Background2":
		p.Background2 = s
	case "ProductAsin":
		p.ASIN = s
	case "ProductAsinVersion":
		p.ASINVersion = s
	case "ProductDescription":
		p.Description = s
	case "ProductDomain":
		p.Domain = s
	case "ProductIconUrl":
		p.IconURL = s
	case "ProductIdStr":
		p.ProductIDStr = s
	case "ProductLine":
		p.Line = s
	case "ProductPublisher":
		p.Publisher = s
	case "ProductSku":
		p.SKU = s
	case "ProductTitle":
		p.Title = s
	case "ScreenshotsJson":
		p.ScreenshotsJSON = s
	case "State":
		p.State = s
	case "VideosJson":
		p.VideosJSON = s
	}
	return nil
}

func assignInstall(i *Install, name string, value any) error {
	if name == "Installed" {
		n, err := integerValue(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		i.Installed = n
		return nil
	}
	s, err := textValue(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	switch name {
	case "Id":
		i.ID = s
	case "InstallDate":
		i.InstallDate = s
	case "InstallDirectory":
		i.InstallDirectory = s
	case "InstallVersion":
		i.InstallVersion = s
	case "InstallVersionName":
		i.InstallVersionName = s
	case "LastKnownLatestVersion":
		i.LastKnownLatestVersion = s
	case "LastKnownLatestVersionTimestamp":
		i.LastKnownLatestVersionTimestamp = s
	case "LastUpdated":
		i.LastUpdated = s
	case "LastPlayed":
		i.LastPlayed = s
	case "ProductAsin":
		i.ASIN = s
	case "ProductTitle":
		i.ProductTitle = s
	}
	return nil
}
