package main

import (
	"flag"
	"fmt"

	"github.com/Luismorlan/maag/utils"
	"github.com/Luismorlan/maag/utils/dotenv"
	Logger "github.com/Luismorlan/maag/utils/log"
)

var apply = flag.Bool("apply", false, "write the changes, otherwise only report them")

func main() {
	flag.Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.WithError(err).Fatal("fail to connect to database")
	}

	report, err := MigrateNewsCategory(db, *apply)
	if err != nil {
		Logger.Log.WithError(err).Fatal("migration failed")
	}

	fmt.Printf("scanned: %d, matched: %d, updated: %d\n", report.Scanned, report.Matched, report.Updated)
	if !*apply && report.Matched > 0 {
		fmt.Println("dry run, pass --apply to write the changes")
	}
}
