package tokendi_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/junioryono/tokendi"
)

// Example types used across the examples.
type Logger interface {
	Log(msg string)
}

type ConsoleLogger struct {
	prefix string
}

func (l *ConsoleLogger) Log(msg string) {
	fmt.Println(l.prefix + msg)
}

type Greeter struct {
	logger Logger
	Name   string
}

func (g *Greeter) Greet() {
	g.logger.Log("hello, " + g.Name)
}

var (
	LoggerSymbol = tokendi.NewSymbol("Logger")

	ConsoleLoggerClass = tokendi.NewClass("ConsoleLogger", func(...any) (any, error) {
		return &ConsoleLogger{prefix: "[app] "}, nil
	})

	GreeterClass = tokendi.NewClass("Greeter", func(args ...any) (any, error) {
		return &Greeter{logger: args[0].(Logger), Name: "world"}, nil
	}, LoggerSymbol)
)

// Example demonstrates basic registration and resolution.
func Example() {
	c := tokendi.New()
	defer c.Close()

	err := c.Register(
		tokendi.BindClass(LoggerSymbol, ConsoleLoggerClass),
		tokendi.UseClass(GreeterClass),
	)
	if err != nil {
		log.Fatal(err)
	}

	greeter, err := tokendi.Resolve[*Greeter](c, GreeterClass)
	if err != nil {
		log.Fatal(err)
	}

	greeter.Greet()
	// Output: [app] hello, world
}

// ExampleUseFactory demonstrates a factory with positional dependencies.
func ExampleUseFactory() {
	c := tokendi.New()
	defer c.Close()

	c.MustRegister(
		tokendi.UseValue("name", "gopher"),
		tokendi.UseValue("greeting", "hi"),
		tokendi.UseFactory("message", func(args ...any) (any, error) {
			return fmt.Sprintf("%s, %s", args[1], args[0]), nil
		}, []tokendi.Token{"name", "greeting"}),
	)

	msg := tokendi.MustResolve[string](c, "message")
	fmt.Println(msg)
	// Output: hi, gopher
}

// ExampleAsTransient demonstrates the difference between scopes.
func ExampleAsTransient() {
	c := tokendi.New()
	defer c.Close()

	counter := 0
	next := func(...any) (any, error) {
		counter++
		return counter, nil
	}

	c.MustRegister(
		tokendi.UseFactory("singleton", next, nil),
		tokendi.UseFactory("transient", next, nil, tokendi.AsTransient()),
	)

	for i := 0; i < 2; i++ {
		s, _ := c.Resolve("singleton")
		t, _ := c.Resolve("transient")
		fmt.Println(s, t)
	}
	// Output:
	// 1 2
	// 1 3
}

// ExampleContainer_CreateChild demonstrates overriding a provider per child.
func ExampleContainer_CreateChild() {
	root := tokendi.New()
	defer root.Close()

	root.MustRegister(
		tokendi.UseValue("user", "anonymous"),
		tokendi.UseFactory("greeting", func(args ...any) (any, error) {
			return "welcome, " + args[0].(string), nil
		}, []tokendi.Token{"user"}),
	)

	child, err := root.CreateChild()
	if err != nil {
		log.Fatal(err)
	}
	defer child.Close()

	child.MustRegister(tokendi.UseValue("user", "alice"))

	fmt.Println(tokendi.MustResolve[string](root, "greeting"))
	fmt.Println(tokendi.MustResolve[string](child, "greeting"))
	// Output:
	// welcome, anonymous
	// welcome, alice
}

// ExampleNewModule demonstrates grouping registrations into modules.
func ExampleNewModule() {
	logging := tokendi.NewModule("logging",
		tokendi.Provide(tokendi.BindClass(LoggerSymbol, ConsoleLoggerClass)),
	)

	app := tokendi.NewModule("app",
		logging.Loader(),
		tokendi.Provide(tokendi.UseClass(GreeterClass)),
	)

	c := tokendi.New()
	defer c.Close()

	if err := c.Load(app); err != nil {
		log.Fatal(err)
	}

	tokendi.MustResolve[*Greeter](c, GreeterClass).Greet()
	// Output: [app] hello, world
}

// ExampleCircularDependencyError demonstrates cycle reporting.
func ExampleCircularDependencyError() {
	c := tokendi.New()
	defer c.Close()

	c.MustRegister(
		tokendi.UseFactory("A", func(...any) (any, error) { return "a", nil }, []tokendi.Token{"B"}),
		tokendi.UseFactory("B", func(...any) (any, error) { return "b", nil }, []tokendi.Token{"A"}),
	)

	_, err := c.Resolve("A")

	var cycle *tokendi.CircularDependencyError
	if errors.As(err, &cycle) {
		fmt.Println(cycle.Chain)
	}
	// Output: [A B A]
}

type Session struct {
	Logger Logger
}

// ExamplePropertyRegistry demonstrates property injection.
func ExamplePropertyRegistry() {
	registry := tokendi.NewPropertyRegistry()
	if err := registry.Register((*Session)(nil), "Logger", LoggerSymbol); err != nil {
		log.Fatal(err)
	}

	c := tokendi.New(tokendi.WithPropertyRegistry(registry))
	defer c.Close()

	c.MustRegister(
		tokendi.BindClass(LoggerSymbol, ConsoleLoggerClass),
		tokendi.UseFactory("session", func(...any) (any, error) {
			return &Session{}, nil
		}, nil),
	)

	session := tokendi.MustResolve[*Session](c, "session")
	session.Logger.Log("session started")
	// Output: [app] session started
}
