package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-schema/internal/console"
	"github.com/griffnb/core-schema/internal/gen"
	"github.com/griffnb/core-schema/internal/resolver"
)

const (
	searchDirFlag         = "dir"
	excludeFlag           = "exclude"
	catalogFlag           = "catalog"
	typesFlag             = "types"
	propertyStrategyFlag  = "propertyStrategy"
	outputFlag            = "output"
	outputTypesFlag       = "outputTypes"
	formatFlag            = "format"
	titleFlag             = "title"
	apiVersionFlag        = "apiVersion"
	descriptionFlag       = "description"
	parseVendorFlag       = "parseVendor"
	parseDependencyFlag   = "parseDependency"
	parseInternalFlag     = "parseInternal"
	parseDepthFlag        = "parseDepth"
	requiredByDefaultFlag = "requiredByDefault"
	accessorModeFlag      = "accessorMode"
	instanceNameFlag      = "instanceName"
	overridesFileFlag     = "overridesFile"
	configFlag            = "config"
	buildTagsFlag         = "buildTags"
	packagePrefixFlag     = "packagePrefix"
	concurrencyFlag       = "concurrency"
	quietFlag             = "quiet"
	debugFlag             = "debug"
)

var initFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directory Go package patterns are resolved in",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories when searching, comma separated",
	},
	&cli.StringFlag{
		Name:    catalogFlag,
		Aliases: []string{"cat"},
		Usage:   "YAML type catalog to read instead of Go sources",
	},
	&cli.StringFlag{
		Name:    typesFlag,
		Aliases: []string{"t"},
		Usage:   "Root types to resolve, comma separated, every exported type by default",
	},
	&cli.StringFlag{
		Name:    propertyStrategyFlag,
		Aliases: []string{"p"},
		Value:   resolver.CamelCase,
		Usage:   "Property Naming Strategy like " + resolver.SnakeCase + "," + resolver.CamelCase + "," + resolver.PascalCase,
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "json,yaml",
		Usage:   "Output types of generated files like json,yaml",
	},
	&cli.StringFlag{
		Name:    formatFlag,
		Aliases: []string{"f"},
		Value:   gen.FormatOpenAPI3,
		Usage:   "Document format, " + gen.FormatOpenAPI3 + " or " + gen.FormatSwagger2,
	},
	&cli.StringFlag{
		Name:  titleFlag,
		Usage: "Document title, the search directory name by default",
	},
	&cli.StringFlag{
		Name:  apiVersionFlag,
		Value: "1.0.0",
		Usage: "Document version",
	},
	&cli.StringFlag{
		Name:  descriptionFlag,
		Usage: "Document description",
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Parse go files in 'vendor' folder, disabled by default",
	},
	&cli.BoolFlag{
		Name:    parseDependencyFlag,
		Aliases: []string{"pd"},
		Usage:   "Read documentation of imported packages, disabled by default",
	},
	&cli.BoolFlag{
		Name:  parseInternalFlag,
		Usage: "Parse go files in internal packages, disabled by default",
	},
	&cli.IntFlag{
		Name:  parseDepthFlag,
		Value: 1,
		Usage: "Dependency parse depth",
	},
	&cli.BoolFlag{
		Name:  requiredByDefaultFlag,
		Usage: "Set validation required for all fields by default",
	},
	&cli.BoolFlag{
		Name:  accessorModeFlag,
		Usage: "Derive interface properties from getX/isX accessor methods",
	},
	&cli.StringFlag{
		Name:  instanceNameFlag,
		Value: "",
		Usage: "Prefix of the generated file names",
	},
	&cli.StringFlag{
		Name:  overridesFileFlag,
		Value: gen.DefaultOverridesFile,
		Usage: "File to read global type overrides from.",
	},
	&cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Usage:   "YAML config file, flags take precedence",
	},
	&cli.StringFlag{
		Name:  buildTagsFlag,
		Usage: "Build tags used when loading packages, comma separated",
	},
	&cli.StringFlag{
		Name:  packagePrefixFlag,
		Value: "",
		Usage: "Parse only packages whose import path match the given prefix, comma separated",
	},
	&cli.IntFlag{
		Name:  concurrencyFlag,
		Usage: "Number of types resolved in parallel, one per CPU by default",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

func initAction(ctx *cli.Context) error {
	strategy := ctx.String(propertyStrategyFlag)

	switch strategy {
	case resolver.CamelCase, resolver.SnakeCase, resolver.PascalCase:
	default:
		return fmt.Errorf("not supported %s propertyStrategy", strategy)
	}

	switch ctx.String(formatFlag) {
	case gen.FormatOpenAPI3, gen.FormatSwagger2:
	default:
		return fmt.Errorf("not supported %s format", ctx.String(formatFlag))
	}

	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}

	outputTypes := splitFlag(ctx.String(outputTypesFlag))
	if len(outputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)
	if ctx.Bool(quietFlag) {
		logger = log.New(io.Discard, "", log.LstdFlags)
	}

	return gen.New().Build(ctx.Context, &gen.Config{
		SearchDir:          ctx.String(searchDirFlag),
		Patterns:           ctx.Args().Slice(),
		CatalogFile:        ctx.String(catalogFlag),
		Types:              splitFlag(ctx.String(typesFlag)),
		Excludes:           ctx.String(excludeFlag),
		BuildTags:          ctx.String(buildTagsFlag),
		PackagePrefix:      ctx.String(packagePrefixFlag),
		ParseVendor:        ctx.Bool(parseVendorFlag),
		ParseInternal:      ctx.Bool(parseInternalFlag),
		ParseDependency:    ctx.Bool(parseDependencyFlag),
		ParseDepth:         ctx.Int(parseDepthFlag),
		OutputDir:          ctx.String(outputFlag),
		OutputTypes:        outputTypes,
		InstanceName:       ctx.String(instanceNameFlag),
		Format:             ctx.String(formatFlag),
		Title:              ctx.String(titleFlag),
		Version:            ctx.String(apiVersionFlag),
		Description:        ctx.String(descriptionFlag),
		PropNamingStrategy: strategy,
		RequiredByDefault:  ctx.Bool(requiredByDefaultFlag),
		AccessorMode:       ctx.Bool(accessorModeFlag),
		OverridesFile:      ctx.String(overridesFileFlag),
		ConfigFile:         ctx.String(configFlag),
		Concurrency:        ctx.Int(concurrencyFlag),
		Debugger:           logger,
	})
}

func splitFlag(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Generate OpenAPI component schemas from Go types."
	app.Commands = []*cli.Command{
		{
			Name:      "init",
			Aliases:   []string{"i"},
			Usage:     "Generate the components document",
			ArgsUsage: "[package patterns]",
			Action:    initAction,
			Flags:     initFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
