package querybuilder

type InsertRows [][]interface{} // multiple Rows

// UpdateData maps column name to new value
type UpdateData map[string]interface{}
