package domain

import "fmt"

// OptionKey раздел системы, по которому нужен тренинг
type OptionKey string

const (
	OptionProductAdmin     OptionKey = "product_admin"
	OptionPriceAdmin       OptionKey = "price_admin"
	OptionPhotoAdmin       OptionKey = "photo_admin"
	OptionBulkUpdate       OptionKey = "bulk_update"
	OptionCatalogPublish   OptionKey = "catalog_publish"
	OptionExplodedView     OptionKey = "exploded_view"
	OptionMaintenanceUsers OptionKey = "maintenance_users"
	OptionCatalogClients   OptionKey = "catalog_clients"
	OptionCatalogSettings  OptionKey = "catalog_settings"
)

// SelectionLevel глубина объяснения по разделу
type SelectionLevel int

const (
	LevelNotNeeded SelectionLevel = 0
	LevelBrief     SelectionLevel = 1
	LevelComplete  SelectionLevel = 2
)

var levelNames = map[SelectionLevel]string{
	LevelNotNeeded: "not_needed",
	LevelBrief:     "brief",
	LevelComplete:  "complete",
}

// String текстовое имя уровня
func (l SelectionLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseSelectionLevel парсит текстовое имя уровня
func ParseSelectionLevel(s string) (SelectionLevel, error) {
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown selection level %q", s)
}

// OptionSelection выбранный уровень по разделу
type OptionSelection struct {
	Key   OptionKey
	Level SelectionLevel
}

// OptionDefinition описание раздела в каталоге
type OptionDefinition struct {
	Key           OptionKey
	Group         int
	AllowedLevels []SelectionLevel
}

// Allows проверяет, допустим ли уровень для раздела
func (d OptionDefinition) Allows(level SelectionLevel) bool {
	for _, l := range d.AllowedLevels {
		if l == level {
			return true
		}
	}
	return false
}

var (
	allLevels     = []SelectionLevel{LevelNotNeeded, LevelBrief, LevelComplete}
	noBriefLevels = []SelectionLevel{LevelNotNeeded, LevelComplete}
	optionCatalog = []OptionDefinition{
		{Key: OptionProductAdmin, Group: 1, AllowedLevels: allLevels},
		{Key: OptionPriceAdmin, Group: 1, AllowedLevels: noBriefLevels},
		{Key: OptionPhotoAdmin, Group: 1, AllowedLevels: allLevels},
		{Key: OptionBulkUpdate, Group: 1, AllowedLevels: allLevels},
		{Key: OptionCatalogPublish, Group: 1, AllowedLevels: noBriefLevels},
		{Key: OptionExplodedView, Group: 2, AllowedLevels: allLevels},
		{Key: OptionMaintenanceUsers, Group: 2, AllowedLevels: allLevels},
		{Key: OptionCatalogClients, Group: 2, AllowedLevels: allLevels},
		{Key: OptionCatalogSettings, Group: 2, AllowedLevels: noBriefLevels},
	}
)

// OptionCatalog каталог разделов в порядке отображения
func OptionCatalog() []OptionDefinition {
	out := make([]OptionDefinition, len(optionCatalog))
	copy(out, optionCatalog)
	return out
}

// LookupOption ищет раздел по ключу
func LookupOption(key OptionKey) (OptionDefinition, bool) {
	for _, d := range optionCatalog {
		if d.Key == key {
			return d, true
		}
	}
	return OptionDefinition{}, false
}
