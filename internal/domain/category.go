package domain

import "strings"

// Category is the closed set of utility request kinds.
type Category string

const (
	CategoryLighting Category = "lighting"
	CategoryTraffic  Category = "traffic"
	CategoryHeating  Category = "heating"
	CategoryWater    Category = "water"
	CategoryElevator Category = "elevator"
)

// CategoryInfo holds display metadata for a category.
type CategoryInfo struct {
	Category          Category
	Label             string
	Icon              string
	Color             string
	DefaultDepartment string
}

var categoryTable = []CategoryInfo{
	{Category: CategoryLighting, Label: "Освещение", Icon: "Lightbulb", Color: "text-yellow-500", DefaultDepartment: "lighting"},
	{Category: CategoryTraffic, Label: "Светофоры", Icon: "Car", Color: "text-red-500", DefaultDepartment: "traffic"},
	{Category: CategoryHeating, Label: "Отопление", Icon: "Thermometer", Color: "text-orange-500", DefaultDepartment: "heating"},
	{Category: CategoryWater, Label: "Водоснабжение", Icon: "Droplets", Color: "text-blue-500", DefaultDepartment: "water"},
	{Category: CategoryElevator, Label: "Лифты", Icon: "ArrowUpDown", Color: "text-purple-500", DefaultDepartment: "elevator"},
}

// Categories returns the lookup table in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryTable))
	copy(out, categoryTable)
	return out
}

// Info returns display metadata for c.
func (c Category) Info() (CategoryInfo, bool) {
	for _, info := range categoryTable {
		if info.Category == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := c.Info()
	return ok
}

// ParseCategory normalizes raw input; "heat" is accepted for heating.
func ParseCategory(raw string) (Category, bool) {
	value := Category(strings.ToLower(strings.TrimSpace(raw)))
	if value == "heat" {
		value = CategoryHeating
	}
	return value, value.Valid()
}

var priorityLabels = map[RequestPriority]string{
	RequestPriorityUrgent: "Срочно",
	RequestPriorityHigh:   "Важно",
	RequestPriorityMedium: "Средне",
	RequestPriorityLow:    "Низко",
}

var statusLabels = map[RequestStatus]string{
	RequestStatusNew:        "Новая",
	RequestStatusAssigned:   "Назначена",
	RequestStatusInProgress: "В работе",
	RequestStatusCompleted:  "Выполнена",
}

// Label returns the static display string.
func (p RequestPriority) Label() string {
	return priorityLabels[p]
}

// Label returns the static display string.
func (s RequestStatus) Label() string {
	return statusLabels[s]
}
