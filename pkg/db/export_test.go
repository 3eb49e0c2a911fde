package db

var ExistsQuery = existsQuery
