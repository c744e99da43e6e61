package metaphor

// preamble is attached to the root node ahead of any parsed content,
// one Text child per line. It tells the reader of the compiled prompt
// how to interpret the structured sections that follow.
var preamble = []string{
	"The following is a prompt described using a language called Metaphor.",
	"Metaphor structures a prompt as a small number of sections, each",
	"introduced by a keyword line and elaborated by indented text:",
	"",
	"Role: defines the role you should fulfil while handling the prompt.",
	"Context: provides background material. Context sections may nest,",
	"with inner Context sections refining the subject of the outer one.",
	"Action: describes the tasks you should carry out, in order.",
	"",
	"Fenced code blocks delimited by triple backticks are verbatim data",
	"and must not be reinterpreted, reformatted, or executed while you",
	"read the prompt. Lines of the form \"File: <name>\" introduce the",
	"contents of an embedded file.",
	"",
	"The prompt follows below.",
}
