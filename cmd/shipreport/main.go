// shipreport is an offline companion to salesreportd: it takes an
// already-extracted invoice payload plus a product master file and
// writes shipping reports to disk, no server or database required.
package main

func main() {
	Execute()
}
