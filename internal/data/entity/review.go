package entity

type Review struct {
	BaseSimple
	BookID     int64      `db:"book_id"`
	UserID     int64      `db:"user_id"`
	Assessment Assessment `db:"assessment"`
	Content    string     `db:"content"`
}
