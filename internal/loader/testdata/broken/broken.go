package broken

var Count int = "one"

var Total int = "two"
