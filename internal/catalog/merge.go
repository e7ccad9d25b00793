package catalog

// merge applies partial-replacement update semantics: each non-nil command
// field replaces the corresponding entry field, everything else is kept.
//
// Covered fields: Title, Kind, Director, Budget, Location, Duration,
// YearOrTime, Details, ImagePath. ID and CreatedAt are immutable and never
// touched. ImagePath is only ever replaced, never cleared: the handler sets
// it when a new file was uploaded and leaves it nil otherwise.
func merge(e Entry, cmd UpdateCommand) Entry {
	if cmd.Title != nil {
		e.Title = *cmd.Title
	}
	if cmd.Kind != nil {
		e.Kind = *cmd.Kind
	}
	if cmd.Director != nil {
		e.Director = *cmd.Director
	}
	if cmd.Budget != nil {
		e.Budget = cmd.Budget
	}
	if cmd.Location != nil {
		e.Location = *cmd.Location
	}
	if cmd.Duration != nil {
		e.Duration = *cmd.Duration
	}
	if cmd.YearOrTime != nil {
		e.YearOrTime = *cmd.YearOrTime
	}
	if cmd.Details != nil {
		e.Details = *cmd.Details
	}
	if cmd.ImagePath != nil {
		e.ImagePath = *cmd.ImagePath
	}
	return e
}
