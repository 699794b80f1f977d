package models

type ServiceType string

const (
	ServiceMaintenance  ServiceType = "maintenance"
	ServiceInstallation ServiceType = "installation"
	ServiceRepair       ServiceType = "repair"
	ServiceQuotation    ServiceType = "quotation"
	ServiceEmergency    ServiceType = "emergency"
	ServiceDeepClean    ServiceType = "deep-clean"
	ServiceGasRefill    ServiceType = "gas-refill"
)

// serviceTypeInfo holds the static catalog entry for one service type.
type serviceTypeInfo struct {
	Label       string
	Description string
	Duration    int // default duration in minutes
	Color       string
}

var serviceTypes = map[ServiceType]serviceTypeInfo{
	ServiceMaintenance:  {"Preventive Maintenance", "Periodic check-up and cleaning of the unit", 90, "#2563eb"},
	ServiceInstallation: {"Installation", "Installation of a new air conditioning unit", 240, "#7c3aed"},
	ServiceRepair:       {"Repair", "Diagnosis and repair of a faulty unit", 120, "#ea580c"},
	ServiceQuotation:    {"Quotation Visit", "On-site visit to prepare a quotation", 45, "#0891b2"},
	ServiceEmergency:    {"Emergency Call", "Urgent attention for a failing unit", 90, "#dc2626"},
	ServiceDeepClean:    {"Deep Cleaning", "Full disassembly cleaning of the unit", 150, "#059669"},
	ServiceGasRefill:    {"Gas Refill", "Refrigerant gas check and refill", 60, "#ca8a04"},
}

// AllServiceTypes returns the catalog in a stable order.
func AllServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceMaintenance,
		ServiceInstallation,
		ServiceRepair,
		ServiceQuotation,
		ServiceEmergency,
		ServiceDeepClean,
		ServiceGasRefill,
	}
}

func (s ServiceType) IsValid() bool {
	_, ok := serviceTypes[s]
	return ok
}

// DefaultDuration returns the default appointment length in minutes,
// or 0 for an unknown type.
func (s ServiceType) DefaultDuration() int {
	return serviceTypes[s].Duration
}

func (s ServiceType) Label() string {
	return serviceTypes[s].Label
}

func (s ServiceType) Description() string {
	return serviceTypes[s].Description
}

func (s ServiceType) Color() string {
	return serviceTypes[s].Color
}

// AppointmentType is the wire shape served by GET /appointment-types.
type AppointmentType struct {
	Type        ServiceType `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Duration    int         `json:"duration"`
	Color       string      `json:"color"`
}

// AppointmentTypeCatalog returns every service type with its defaults.
func AppointmentTypeCatalog() []AppointmentType {
	catalog := make([]AppointmentType, 0, len(serviceTypes))
	for _, t := range AllServiceTypes() {
		info := serviceTypes[t]
		catalog = append(catalog, AppointmentType{
			Type:        t,
			Label:       info.Label,
			Description: info.Description,
			Duration:    info.Duration,
			Color:       info.Color,
		})
	}
	return catalog
}
