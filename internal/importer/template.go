package importer

// CSVTemplate returns a starter file for the import format: the recognized
// header plus sample rows showing how hierarchy cells chain parents.
func CSVTemplate() string {
	return `workstream,milestone,activity,task,subtask,status,owner,start_date,target_end_date,notes
Development,,,,,in_progress,Alice,2024-01-01,2024-06-30,Main engineering workstream
Development,Sprint 1,,,,in_progress,Bob,2024-01-15,2024-01-29,First sprint
Development,Sprint 1,API design,,,not_started,Bob,2024-01-15,2024-01-20,REST surface
Development,Sprint 1,API design,Draft endpoints,,not_started,Carol,,,Initial route list
Launch,,,,,not_started,Alice,,2024-07-15,Go-to-market workstream
`
}
