// Package token defines line classification kinds and the PlantUML block
// keyword table used by the formatter.
// Invariants:
//   - Keywords are matched case-insensitively; the table stores lowercase only.
//   - A keyword classifies a line by its first whitespace-delimited word;
//     the package never looks at the rest of the line (that is lexer's job).
//   - Diagram markers (@startuml, @enduml, ...) are deliberately absent:
//     they bound the document but do not nest.
package token
