package cmd

import (
	"bytes"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "help flag", args: []string{"--help"}, wantErr: false},
		{name: "version flag", args: []string{"--version"}, wantErr: false},
		{name: "list with no suites registered", args: []string{"--list"}, wantErr: false},
		{name: "unknown suite name", args: []string{"NoSuchSuite"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()

			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			rootCmd.SetArgs(nil)
		})
	}
}

func TestInitConfig(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("initConfig() panicked: %v", r)
		}
	}()
	initConfig()
}

func TestInitLogger(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("initLogger() panicked: %v", r)
		}
	}()
	initLogger()
}
