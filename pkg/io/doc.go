// Package io reads report entries from JSON.
//
// # JSON Format
//
// The entry file (output.json) is an array with one object per question:
//
//	[
//	  {
//	    "index": 0,
//	    "question": "Print the sum of two numbers",
//	    "extension": "py",
//	    "code": "print(1 + 2)\n",
//	    "code_rtf": "{\\rtf1 ...}",
//	    "output_rtf": "3\n"
//	  }
//	]
//
// # Fields
//
// Required:
//   - index: position of the entry in the report; {n} renders index+1
//
// Optional:
//   - question, code: default to empty strings
//   - extension: source file extension, used to pick a highlighter lexer
//   - code_rtf: RTF rendering of code; formatting is recovered from it
//   - output_rtf: program output; terminal escape sequences are removed
//     when rendered
//
// Use [ImportEntries] to read from a file path, or [ReadEntries] to read from
// any io.Reader. Malformed JSON is reported with code INVALID_INPUT.
package io
