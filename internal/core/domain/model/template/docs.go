// Package template provides the ServiceTemplate aggregate and the schema
// machinery behind dynamic data-capture forms.
//
// A service template binds a service type name to a Schema: a declarative,
// recursively structured descriptor of the data a technician must capture to
// complete a work order of that type. Schemas are parsed from the
// JSON-Schema-subset documents the catalog stores (type, properties,
// required, items) and validated generically, independent of any form
// rendering library.
//
// Validation runs in two modes: CompleteValidation gates the completion
// transition and enforces required fields; PartialValidation backs progress
// saves and only rejects type mismatches on fields that are present. Failures
// carry the full list of offending field paths so the data-entry UI can show
// them all at once.
package template
