// Package modify applies accents and fonts to the text before the point.
//
// After the modify prefix key one more key selects a modifier. The text
// it applies to, the extent, is chosen by priority:
//
//  1. the active region;
//  2. with a repeat count N, the N words before the point;
//  3. nothing, when the point follows whitespace, a dollar, an opening
//     bracket or the start of the buffer; an empty form is inserted and
//     the point placed inside it;
//  4. the unit before the point: a bracketed group, a macro name such
//     as \alpha, a run of letters and digits, or a single character.
//
// Command modifiers wrap as \cmd{unit}, style modifiers as {\cmd unit}.
package modify
