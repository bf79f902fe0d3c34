// Package format turns raw program fields into display strings.
//
// # Overview
//
// Program records are loosely typed. Numbers may be missing, dates arrive in
// whatever layout the database produced, and four columns (entry
// requirements, curriculum, facilities, career outcomes) can be an object,
// an array, a JSON-encoded string of either, or plain prose. Every function
// here takes one such field and returns a single line of text.
//
// # Contract
//
// All normalizers are pure and total:
//
//   - They never panic and never return an error.
//   - Missing, zero or unusable input yields "".
//   - They do not decide whether a row is worth drawing. That rule lives in
//     the layout engine, which treats "" (and a few placeholder strings) as
//     "omit this field".
//
// # Loosely-typed Fields
//
// The four dynamic columns go through one coercion step that classifies a
// [program.Raw] as empty, plain text, structured JSON or malformed JSON.
// Each field then supplies its own extraction strategy:
//
//	format.EntryRequirements(p.EntryRequirements) // "STPM: CGPA 3.5; Subjects: Biology, Chemistry"
//	format.Curriculum(p.Curriculum)               // "Calculus, Programming I, Data Structures"
//	format.Facilities(p.Facilities)               // "Library, AI Lab, Gym"
//	format.CareerOutcomes(p.CareerOutcomes)       // "Software Engineer, Data Analyst"
//
// An object and its JSON-string form always render the same text.
package format
