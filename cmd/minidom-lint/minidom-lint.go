package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/minidom"
)

type cmdopts struct {
	Decl       bool `long:"decl" description:"emit a leading XML declaration"`
	NoComments bool `long:"nocomments" description:"treat comments as errors"`
	Version    bool `long:"version" description:"display the version of the library"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("minidom-lint: using minidom version %s\n", minidom.Version)
}

func showUsage() {
	fmt.Printf(`Usage : minidom-lint [options] XMLfiles ...
	Parse the XML files and output the re-serialized result
	--version : display the version of the XML library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	var inputs []io.Reader
	if len(args) > 0 {
		for _, f := range args {
			fh, err := os.Open(f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err)
				return 1
			}
			defer fh.Close()
			inputs = append(inputs, fh)
		}
	} else {
		inputs = append(inputs, os.Stdin)
	}

	var popts []minidom.ParseOption
	if opts.NoComments {
		popts = append(popts, minidom.WithRejectComments(true))
	}

	var s minidom.Serializer
	for _, in := range inputs {
		root, err := minidom.ParseReader(in, popts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}

		if opts.Decl {
			err = s.SerializeWithDecl(os.Stdout, root)
		} else {
			err = s.Serialize(os.Stdout, root)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		fmt.Println()
	}

	return 0
}
