package main

import (
	sqlx "github.com/jmoiron/sqlx"
	msgtree "github.com/next-exp/msgtree_go/pkg"
)

type writerSink struct {
	writer *msgtree.Writer
}

func (s writerSink) Save(result msgtree.Result) error {
	return s.writer.WriteResult(&result)
}

type storeSink struct {
	store *msgtree.ResultStore
}

func (s storeSink) Save(result msgtree.Result) error {
	return s.store.Put(result)
}

type dbSink struct {
	db *sqlx.DB
}

func (s dbSink) Save(result msgtree.Result) error {
	return msgtree.SaveResultToDB(s.db, result)
}
