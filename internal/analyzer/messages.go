package analyzer

// Messages holds the user-facing output literals. The defaults are the
// Hungarian strings of the daily weather report.
type Messages struct {
	NoCalm           string `yaml:"no_calm"`
	FilesCreated     string `yaml:"files_created"`
	AverageLabel     string `yaml:"average_label"`
	FluctuationLabel string `yaml:"fluctuation_label"`
	NotAvailable     string `yaml:"not_available"`
}

// DefaultMessages returns the Hungarian output literals.
func DefaultMessages() Messages {
	return Messages{
		NoCalm:           "Nem volt szélcsend a mérések idején.",
		FilesCreated:     "A fájlok elkészültek.",
		AverageLabel:     "Középhőmérséklet",
		FluctuationLabel: "Hőmérséklet-ingadozás",
		NotAvailable:     "NA",
	}
}

// WithDefaults fills every empty field from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	if m.NoCalm == "" {
		m.NoCalm = d.NoCalm
	}
	if m.FilesCreated == "" {
		m.FilesCreated = d.FilesCreated
	}
	if m.AverageLabel == "" {
		m.AverageLabel = d.AverageLabel
	}
	if m.FluctuationLabel == "" {
		m.FluctuationLabel = d.FluctuationLabel
	}
	if m.NotAvailable == "" {
		m.NotAvailable = d.NotAvailable
	}
	return m
}
