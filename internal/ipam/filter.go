package ipam

import (
	"net/url"
	"strings"

	"ipmanager/internal/models"
)

// Filter: регистронезависимый поиск подстроки по каждому полю, условия через AND.
// Пустое значение совпадает со всем.
type Filter struct {
	IPAddress   string
	DeviceName  string
	MACAddress  string
	Description string
	AssignedTo  string
}

// FilterFromQuery читает фильтр из query-параметров (?device_name=...&static_ip=...).
func FilterFromQuery(q url.Values) Filter {
	f := Filter{
		IPAddress:   q.Get("ip_address"),
		DeviceName:  q.Get("device_name"),
		MACAddress:  q.Get("mac_address"),
		Description: q.Get("description"),
		AssignedTo:  q.Get("assigned_to"),
	}
	if f.IPAddress == "" {
		f.IPAddress = q.Get("static_ip")
	}
	if f.DeviceName == "" {
		f.DeviceName = q.Get("machine")
	}
	return f
}

func (f Filter) IsZero() bool { return f == Filter{} }

func (f Filter) Match(e models.IPEntry) bool {
	return contains(e.IPAddress, f.IPAddress) &&
		contains(e.DeviceName, f.DeviceName) &&
		contains(e.MACAddress, f.MACAddress) &&
		contains(e.Description, f.Description) &&
		contains(e.AssignedTo, f.AssignedTo)
}

// Apply возвращает подходящие записи в исходном порядке. Никогда не nil.
func (f Filter) Apply(in []models.IPEntry) []models.IPEntry {
	if f.IsZero() {
		if in == nil {
			return []models.IPEntry{}
		}
		return in
	}
	out := make([]models.IPEntry, 0, len(in))
	for _, e := range in {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func contains(field, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}
