package tui

import "rundown-cli/internal/rundown"

// Single-field patch constructors for the interactive edit commands.

func patchName(name string) rundown.Patch {
	return rundown.Patch{Name: &name}
}

func patchDuration(secs int) rundown.Patch {
	return rundown.Patch{Duration: &secs}
}

func patchTalent(talent string) rundown.Patch {
	return rundown.Patch{Talent: &talent}
}

func patchFloated(floated bool) rundown.Patch {
	return rundown.Patch{Floated: &floated}
}
