// resolve.go
package config

// Overrides carries command-line overrides applied after the files are merged.
// Nil fields leave the file value alone.
type Overrides struct {
	StoreDriver *string
	StorePath   *string
	HTTPAddr    *string
	GRPCAddr    *string
	LogLevel    *string
	UseCurated  *bool
}

func (o Overrides) apply(s *Settings) {
	if o.StoreDriver != nil {
		s.StoreDriver = *o.StoreDriver
	}
	if o.StorePath != nil {
		s.StorePath = *o.StorePath
	}
	if o.HTTPAddr != nil {
		s.HTTPAddr = *o.HTTPAddr
	}
	if o.GRPCAddr != nil {
		s.GRPCAddr = *o.GRPCAddr
	}
	if o.LogLevel != nil {
		s.LogLevel = *o.LogLevel
	}
	if o.UseCurated != nil {
		s.UseCurated = *o.UseCurated
	}
}
