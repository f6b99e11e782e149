// Package web embeds the browser quiz page. The page is static: it fetches
// questions from /api/questions, scores locally and posts the tally to
// /api/grade.
package web

import _ "embed"

//go:embed static/index.html
var QuizPage []byte
