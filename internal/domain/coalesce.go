package domain

// NonEmptyPtr returns nil for a nil or empty string pointer.
func NonEmptyPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
