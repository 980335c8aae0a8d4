package entity

type Writer struct {
	BaseSimple
	Name string `db:"name"`
}
