package model

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is a multiple-choice item. Rows are only ever inserted or
// deleted, never updated.
type Question struct {
	ID           uint   `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Text         string `gorm:"column:Text;type:text;not null" json:"text"`
	A            string `gorm:"column:A;type:text;not null" json:"a"`
	B            string `gorm:"column:B;type:text;not null" json:"b"`
	C            string `gorm:"column:C;type:text;not null" json:"c"`
	D            string `gorm:"column:D;type:text;not null" json:"d"`
	CorrectIndex int    `gorm:"column:CorrectIndex;not null;check:chk_questions_correct_index,\"CorrectIndex\" BETWEEN 0 AND 3" json:"correct_index"`
}

func (Question) TableName() string {
	return "Questions"
}

// Options returns the four option texts in display order.
func (q Question) Options() []string {
	return []string{q.A, q.B, q.C, q.D}
}

// SetOptions copies opts into the A..D columns. Callers validate the length.
func (q *Question) SetOptions(opts []string) {
	q.A, q.B, q.C, q.D = opts[0], opts[1], opts[2], opts[3]
}
