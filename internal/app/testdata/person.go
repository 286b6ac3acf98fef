package main

import "fmt"

// Person represents a human being
type Person struct {
	ID      int64
	Name    string `xorm:"varchar(64)"`
	Age     int
	Address *Address
}

// Address stores location information
type Address struct {
	Street  string
	City    string
	ZipCode int
}

func (p *Person) SayHello() string {
	return fmt.Sprintf("Hello, my name is %s", p.Name)
}
