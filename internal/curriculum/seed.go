package curriculum

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed data/*.yaml
var dataFS embed.FS

var defaultCatalog *Catalog

func init() {
	c, err := loadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("curriculum: %v", err))
	}
	defaultCatalog = c
}

func loadEmbedded() (*Catalog, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, err
	}
	// toan, vatli, hoahoc: keep subject display order.
	order := map[string]int{"toan.yaml": 0, "vatli.yaml": 1, "hoahoc.yaml": 2}
	sort.SliceStable(entries, func(i, j int) bool {
		return order[entries[i].Name()] < order[entries[j].Name()]
	})

	files := make([][]byte, 0, len(entries))
	for _, e := range entries {
		data, err := dataFS.ReadFile("data/" + e.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, data)
	}
	return Load(files...)
}

// Default returns the embedded GDPT 2018 catalog.
func Default() *Catalog {
	return defaultCatalog
}
